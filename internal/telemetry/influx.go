package telemetry

import (
	"context"

	"github.com/charmbracelet/log"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// InfluxConfig locates the bucket summaries are written to.
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxSink writes session summaries as points in the "session"
// measurement. Writes are batched and asynchronous.
type InfluxSink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
}

// NewInfluxSink connects lazily; write failures are reported to logger.
func NewInfluxSink(cfg InfluxConfig, logger *log.Logger) *InfluxSink {
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000),
	)
	writer := client.WriteAPI(cfg.Org, cfg.Bucket)

	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			logger.Error("error sending session summary to InfluxDB", "bucket", cfg.Bucket, "err", writeErr)
		}
	}(writer.Errors())

	return &InfluxSink{client: client, writer: writer}
}

// WriteSummary queues the summary point.
func (s *InfluxSink) WriteSummary(_ context.Context, sum Summary) error {
	s.writer.WritePoint(summaryPoint(sum))
	return nil
}

// Close flushes pending points and releases the client.
func (s *InfluxSink) Close() {
	s.writer.Flush()
	s.client.Close()
}

func summaryPoint(sum Summary) *influxdb2_write.Point {
	return influxdb2.NewPointWithMeasurement("session").
		AddTag("session", sum.Session).
		AddTag("user", sum.User).
		AddField("duration_s", sum.Duration.Seconds()).
		AddField("games", sum.Games).
		AddField("wins", sum.Wins).
		AddField("losses", sum.Losses).
		AddField("best_score", sum.BestScore).
		AddField("destroyed", sum.Destroyed).
		AddField("fragments", sum.Fragments).
		AddField("hits", sum.Hits).
		AddField("ticks", int64(sum.Ticks)).
		SetTime(sum.Started)
}
