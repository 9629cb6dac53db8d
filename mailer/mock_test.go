package mailer

import (
	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/mock"
)

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}
