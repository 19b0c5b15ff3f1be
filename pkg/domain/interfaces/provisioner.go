package interfaces

//go:generate moq -out mocks/provisioner_mock.go -pkg mocks . Provisioner

import (
	"context"

	"github.com/secmon-lab/kadr/pkg/domain/model"
)

// Provisioner runs one provisioning invocation over the test administrator accounts
type Provisioner interface {
	// Run provisions every account in order. Per-account failures are reported in the
	// response; an error is returned only when the invocation could not start.
	Run(ctx context.Context) (*model.AggregateResponse, error)
}
