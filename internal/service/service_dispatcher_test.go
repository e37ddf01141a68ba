package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/pilot-docs-intake/internal/adapter"
	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/metrics"
	"github.com/MKhiriev/pilot-docs-intake/internal/mock"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSender    = "forms@example.com"
	testRecipient = "crewing@example.com"
	testMailbox   = "qa@example.com"
)

func testMailConfig() config.Mail {
	return config.Mail{
		Host:          "smtp.example.com",
		Port:          587,
		Username:      testSender,
		Password:      "app-password",
		Recipient:     testRecipient,
		TestRecipient: testMailbox,
	}
}

func testNotification() models.NotificationMessage {
	return models.NotificationMessage{
		Subject:      "Flight Time Experience Form - Jane Pilot",
		HTMLBody:     "<p>body</p>",
		Archive:      &models.ArchiveBundle{FileName: "pilot-documents-sub-1.zip", Data: []byte("zip")},
		SubmissionID: "sub-1",
		Priority:     models.PriorityHigh,
	}
}

func newTestDispatcher(t *testing.T, ctrl *gomock.Controller, cfg config.Mail) (*dispatcher, *mock.MockMailTransport) {
	t.Helper()
	transport := mock.NewMockMailTransport(ctrl)
	d := NewDispatcher(transport, cfg, nil, logger.Nop()).(*dispatcher)
	return d, transport
}

func TestDispatcher_Dispatch_Accepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, transport := newTestDispatcher(t, ctrl, testMailConfig())
	ctx := context.Background()

	transport.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.NotificationMessage) (models.SendResult, error) {
			assert.Equal(t, testRecipient, msg.To)
			assert.Equal(t, "Flight Time Experience Form - Jane Pilot", msg.Subject)
			assert.NotNil(t, msg.Archive)
			return models.SendResult{MessageID: "<m1@example.com>", Accepted: []string{testRecipient}}, nil
		},
	)

	report, err := d.Dispatch(ctx, testNotification(), "Jane Pilot")
	require.NoError(t, err)

	assert.Equal(t, "<m1@example.com>", report.MessageID)
	assert.Equal(t, testRecipient, report.Recipient)
	assert.Nil(t, report.Fallback)
}

func TestDispatcher_Dispatch_RejectedPrimarySendsExactlyOneFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, transport := newTestDispatcher(t, ctrl, testMailConfig())
	ctx := context.Background()

	gomock.InOrder(
		transport.EXPECT().Send(ctx, gomock.Any()).
			Return(models.SendResult{MessageID: "<m1@example.com>", Rejected: []string{testRecipient}}, nil),
		transport.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.NotificationMessage) (models.SendResult, error) {
				assert.Equal(t, testSender, msg.To)
				assert.Equal(t, "[BACKUP DELIVERY] Flight Time Experience Form - Jane Pilot", msg.Subject)
				assert.Equal(t, "<p>body</p>", msg.HTMLBody)
				assert.Equal(t, "pilot-documents-sub-1.zip", msg.Archive.FileName)
				return models.SendResult{MessageID: "<m2@example.com>", Accepted: []string{testSender}}, nil
			},
		),
	)

	report, err := d.Dispatch(ctx, testNotification(), "Jane Pilot")
	require.NoError(t, err)

	assert.Equal(t, "<m1@example.com>", report.MessageID)
	assert.Equal(t, []string{testRecipient}, report.Rejected)
	require.NotNil(t, report.Fallback)
	assert.Equal(t, testSender, report.Fallback.Recipient)
	assert.Equal(t, "<m2@example.com>", report.Fallback.MessageID)
	assert.Empty(t, report.Fallback.Error)
}

func TestDispatcher_Dispatch_PendingPrimaryTriggersFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, transport := newTestDispatcher(t, ctrl, testMailConfig())

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(models.SendResult{Pending: []string{testRecipient}}, nil)
	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(models.SendResult{Accepted: []string{testSender}}, nil)

	report, err := d.Dispatch(context.Background(), testNotification(), "Jane Pilot")
	require.NoError(t, err)
	require.NotNil(t, report.Fallback)
}

func TestDispatcher_Dispatch_FallbackFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, transport := newTestDispatcher(t, ctrl, testMailConfig())
	reg := prometheus.NewRegistry()
	d.metrics = metrics.NewDomain(reg)

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(models.SendResult{MessageID: "<m1@example.com>", Rejected: []string{testRecipient}}, nil),
		transport.EXPECT().Send(gomock.Any(), gomock.Any()).
			Return(models.SendResult{}, adapter.ErrTransport),
	)

	report, err := d.Dispatch(context.Background(), testNotification(), "Jane Pilot")
	require.NoError(t, err)

	require.NotNil(t, report.Fallback)
	assert.NotEmpty(t, report.Fallback.Error)
	assert.Equal(t, "<m1@example.com>", report.MessageID)

	count, err := testutil.GatherAndCount(reg, "pilot_docs_deliveries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDispatcher_Dispatch_TransportErrorIsFatalAndNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, transport := newTestDispatcher(t, ctrl, testMailConfig())

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return(models.SendResult{}, adapter.ErrTransport).
		Times(1)

	_, err := d.Dispatch(context.Background(), testNotification(), "Jane Pilot")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.ErrorIs(t, err, adapter.ErrTransport)
}

func TestDispatcher_Dispatch_TestModeOverridesRecipient(t *testing.T) {
	names := []string{"TEST pilot", "John Test", "contest winner", "tEsT"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			d, transport := newTestDispatcher(t, ctrl, testMailConfig())

			transport.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, msg models.NotificationMessage) (models.SendResult, error) {
					assert.Equal(t, testMailbox, msg.To)
					assert.Equal(t, "[TEST] Flight Time Experience Form - Jane Pilot", msg.Subject)
					return models.SendResult{Accepted: []string{testMailbox}}, nil
				},
			)

			report, err := d.Dispatch(context.Background(), testNotification(), name)
			require.NoError(t, err)
			assert.Equal(t, testMailbox, report.Recipient)
			assert.Nil(t, report.Fallback)
		})
	}
}

func TestDispatcher_Dispatch_NotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Mail)
	}{
		{name: "no user", mutate: func(c *config.Mail) { c.Username = "" }},
		{name: "no password", mutate: func(c *config.Mail) { c.Password = "" }},
		{name: "no recipient", mutate: func(c *config.Mail) { c.Recipient = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testMailConfig()
			tt.mutate(&cfg)

			ctrl := gomock.NewController(t)
			d, _ := newTestDispatcher(t, ctrl, cfg)

			_, err := d.Dispatch(context.Background(), testNotification(), "Jane Pilot")
			assert.ErrorIs(t, err, ErrMailNotConfigured)
		})
	}
}

func TestTestModePolicy_Applies(t *testing.T) {
	p := TestModePolicy{Marker: "test", Recipient: testMailbox}

	assert.True(t, p.Applies("Test Pilot"))
	assert.False(t, p.Applies("Jane Pilot"))
	assert.False(t, TestModePolicy{Marker: "test"}.Applies("test"), "no mailbox, no redirect")
}
