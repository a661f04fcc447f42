// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kafkasink

import (
	"context"
	"time"

	"github.com/kaleido-io/ledgerpay/internal/config"
	"github.com/kaleido-io/ledgerpay/internal/i18n"
	"github.com/kaleido-io/ledgerpay/internal/log"
	"github.com/kaleido-io/ledgerpay/internal/retry"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink is a subscriber that publishes every completion notification to a Kafka topic.
// Send queues the payload, and a background publisher writes it with bounded retry.
type KafkaSink interface {
	ID() string
	Send(ctx context.Context, payload []byte) error
	Start() error
	WaitStop()
}

type kafkaSink struct {
	ctx          context.Context
	topic        string
	writer       messageWriter
	writeTimeout time.Duration
	attempts     int
	retry        *retry.Retry
	queue        chan []byte
	done         chan struct{}
}

// Enabled is true when brokers have been configured
func Enabled() bool {
	return len(config.GetStringSlice(config.KafkaBrokers)) > 0
}

func NewKafkaSink(ctx context.Context) KafkaSink {
	brokers := config.GetStringSlice(config.KafkaBrokers)
	topic := config.GetString(config.KafkaTopic)
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newKafkaSink(ctx, topic, writer)
}

func newKafkaSink(ctx context.Context, topic string, writer messageWriter) *kafkaSink {
	return &kafkaSink{
		ctx:          log.WithLogField(ctx, "role", "kafka-sink"),
		topic:        topic,
		writer:       writer,
		writeTimeout: config.GetDuration(config.KafkaWriteTimeout),
		attempts:     config.GetInt(config.KafkaRetryAttempts),
		retry: &retry.Retry{
			InitialDelay: config.GetDuration(config.KafkaRetryInitialDelay),
			MaximumDelay: config.GetDuration(config.KafkaRetryMaximumDelay),
		},
		queue: make(chan []byte, config.GetInt(config.KafkaSendQueueLength)),
		done:  make(chan struct{}),
	}
}

// ID is the identity the sink is registered under with the subscriber registry
func (k *kafkaSink) ID() string {
	return "kafka:" + k.topic
}

func (k *kafkaSink) Send(ctx context.Context, payload []byte) error {
	select {
	case <-k.done:
		return i18n.NewError(ctx, i18n.MsgSinkClosed, k.ID())
	default:
	}
	select {
	case k.queue <- payload:
		return nil
	default:
		return i18n.NewError(ctx, i18n.MsgSinkQueueFull, k.ID())
	}
}

func (k *kafkaSink) Start() error {
	go k.publisher()
	return nil
}

func (k *kafkaSink) WaitStop() {
	<-k.done
}

func (k *kafkaSink) publisher() {
	defer close(k.done)
	l := log.L(k.ctx)
	l.Infof("Publishing completions to Kafka topic '%s'", k.topic)
	for {
		select {
		case payload := <-k.queue:
			if err := k.publish(payload); err != nil {
				l.Errorf("Dropped completion after %d attempts: %s", k.attempts, err)
			}
		case <-k.ctx.Done():
			if err := k.writer.Close(); err != nil {
				l.Warnf("Kafka writer close failed: %s", err)
			}
			l.Debugf("Kafka publisher exiting")
			return
		}
	}
}

func (k *kafkaSink) publish(payload []byte) error {
	return k.retry.Do(k.ctx, "kafka publish", func(attempt int) (bool, error) {
		ctx, cancel := context.WithTimeout(k.ctx, k.writeTimeout)
		defer cancel()
		err := k.writer.WriteMessages(ctx, kafka.Message{Value: payload})
		if err != nil {
			return attempt < k.attempts, i18n.WrapError(ctx, err, i18n.MsgKafkaPublishFailed, k.topic)
		}
		return false, nil
	})
}
