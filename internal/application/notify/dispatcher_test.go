package notify

import (
	"context"
	"testing"
	"time"

	"github.com/ceptevar-api/internal/domain"
	"github.com/ceptevar-api/internal/infrastructure/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSMS struct {
	to   string
	body string
}

func (c *captureSMS) SendSMS(_ context.Context, to, message string) error {
	c.to = to
	c.body = message
	return nil
}

func TestSendCode_InfersLanguageFromPrefix(t *testing.T) {
	sms := &captureSMS{}
	d := NewDispatcher(sms, nil, "CepteVar", time.Second)

	err := d.SendCode(context.Background(), domain.ChannelUserPhone, "+12025550123", "123456", "")
	require.NoError(t, err)
	assert.Equal(t, "+12025550123", sms.to)
	assert.Equal(t, "Your CepteVar verification code is: 123456", sms.body)
}

func TestSendCode_ExplicitLanguageWins(t *testing.T) {
	sms := &captureSMS{}
	d := NewDispatcher(sms, nil, "CepteVar", time.Second)

	err := d.SendCode(context.Background(), domain.ChannelUserPhone, "+12025550123", "123456", "tr")
	require.NoError(t, err)
	assert.Equal(t, "CepteVar doğrulama kodunuz: 123456", sms.body)
}

func TestSendCode_DisabledSenderFailsCleanly(t *testing.T) {
	d := NewDispatcher(sns.NewDisabledSender(), nil, "CepteVar", time.Second)

	err := d.SendCode(context.Background(), domain.ChannelUserPhone, "+905551234567", "123456", "tr")
	assert.ErrorIs(t, err, sns.ErrDisabled)
}
