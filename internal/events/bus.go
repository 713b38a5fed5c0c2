// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultBufferSize is the per-subscriber output buffer.
const DefaultBufferSize int64 = 256

// NewBus creates the in-process Pub/Sub. The returned value is both the
// message.Publisher wrapped by Publisher and the message.Subscriber handed
// to the Router.
func NewBus(bufferSize int64, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: bufferSize,
	}, logger)
}
