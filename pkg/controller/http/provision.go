package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/utils/apperr"
)

// ProvisionHandler serves the test administrator provisioning function
type ProvisionHandler struct {
	provisioner interfaces.Provisioner
}

// NewProvisionHandler creates a new provision handler
func NewProvisionHandler(provisioner interfaces.Provisioner) *ProvisionHandler {
	return &ProvisionHandler{
		provisioner: provisioner,
	}
}

// HandleProvision runs the provisioner. The request body is not read. Partial
// failures are reported in the results with status 200; only a failure to start the
// run, or a panic, results in 500.
func (h *ProvisionHandler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer func() {
		if rec := recover(); rec != nil {
			err := goerr.New("unexpected failure in provisioning",
				goerr.V("panic", rec),
				goerr.T(model.ErrTagSetup))
			apperr.Handle(ctx, err)
			writeError(w, r, err, http.StatusInternalServerError)
		}
	}()

	resp, err := h.provisioner.Run(ctx)
	if err != nil {
		apperr.Handle(ctx, err)
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}
