package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideRetry(t *testing.T) {
	netErr := errors.New("connection refused")

	tests := []struct {
		name    string
		attempt int
		status  int
		err     error
		want    retryAction
	}{
		{"success on first attempt", 1, 200, nil, actionSucceed},
		{"success on last attempt", 3, 200, nil, actionSucceed},
		{"503 with attempts left", 1, 503, nil, actionRetry},
		{"503 on second attempt", 2, 503, nil, actionRetry},
		{"503 on last attempt", 3, 503, nil, actionExhausted},
		{"network error with attempts left", 1, 0, netErr, actionRetry},
		{"network error on last attempt", 3, 0, netErr, actionExhausted},
		{"404 is permanent", 1, 404, nil, actionFailPermanent},
		{"500 is permanent", 1, 500, nil, actionFailPermanent},
		{"401 is permanent even mid-loop", 2, 401, nil, actionFailPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideRetry(tt.attempt, 3, tt.status, tt.err))
		})
	}
}
