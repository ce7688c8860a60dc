package api

import (
	"errors"

	"github.com/filippobenozzi/algodomo-bridge/internal/gateway"
)

func isTimeoutErr(err error) bool {
	return errors.Is(err, gateway.ErrTimeout)
}

func isProtocolErr(err error) bool {
	return errors.Is(err, gateway.ErrProtocol) || errors.Is(err, gateway.ErrNoReply)
}
