package idgen

// Metrics 指标常量定义
const (
	// MetricSnowflakeGenerated 雪花算法 ID 生成总数 (Counter)
	MetricSnowflakeGenerated = "idgen_snowflake_generated_total"

	// MetricSnowflakeClockRegressions 被钳制吸收的时钟回拨次数 (Counter)
	MetricSnowflakeClockRegressions = "idgen_snowflake_clock_regressions_total"

	// MetricUUIDGenerated UUID v7 生成总数 (Counter)
	MetricUUIDGenerated = "idgen_uuid_generated_total"
)
