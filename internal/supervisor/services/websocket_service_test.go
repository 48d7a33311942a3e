// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHub is a test double for the ContextHub interface.
type mockHub struct {
	runErr  error
	started chan struct{}
}

func (m *mockHub) RunWithContext(ctx context.Context) error {
	close(m.started)
	if m.runErr != nil {
		return m.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubService_Interface(t *testing.T) {
	var _ suture.Service = (*WebSocketHubService)(nil)
}

func TestWebSocketHubService_Serve(t *testing.T) {
	t.Run("returns ctx.Err on cancellation", func(t *testing.T) {
		hub := &mockHub{started: make(chan struct{})}
		svc := NewWebSocketHubService(hub)

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		<-hub.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("Serve did not return after cancellation")
		}
	})

	t.Run("propagates hub error", func(t *testing.T) {
		hubErr := errors.New("hub crashed")
		hub := &mockHub{runErr: hubErr, started: make(chan struct{})}
		svc := NewWebSocketHubService(hub)

		if err := svc.Serve(context.Background()); !errors.Is(err, hubErr) {
			t.Errorf("expected hub error, got %v", err)
		}
	})
}

func TestWebSocketHubService_String(t *testing.T) {
	svc := NewWebSocketHubService(&mockHub{started: make(chan struct{})})
	if svc.String() != "websocket-hub" {
		t.Errorf("expected 'websocket-hub', got %q", svc.String())
	}
}
