package messaging

type consumeOptions struct {
	// concurrency is the number of handler goroutines processing messages
	// in parallel.
	concurrency int

	// autoAck makes the wrapper ack/nack automatically after the handler
	// returns.
	autoAck bool

	// group identifies the Kafka consumer group.
	group string

	// queueGroup identifies the NATS queue group.
	queueGroup string

	// params carries broker-specific settings by name.
	params map[string]string
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}

	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithAutoAck controls whether the wrapper should ack/nack automatically
// after the handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithParam sets a single broker-specific parameter.
func WithParam(key, value string) ConsumeOption {
	return func(o *consumeOptions) {
		if key == "" {
			return
		}

		if o.params == nil {
			o.params = make(map[string]string, 1)
		}

		o.params[key] = value
	}
}
