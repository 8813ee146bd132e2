package calculator

import (
	"net/http"

	"github.com/eventboard/eventboard/pkg/apierror"
	"github.com/eventboard/eventboard/pkg/validation"
	log "github.com/sirupsen/logrus"
)

type Request struct {
	Val1     any    `json:"val1"`
	Val2     any    `json:"val2"`
	Operator string `json:"operator"`
}

type Result struct {
	Result float64 `json:"result"`
}

type Handler struct {
	strictOperators bool
}

func NewHandler(strictOperators bool) *Handler {
	return &Handler{strictOperators: strictOperators}
}

// Rules are the request rules run before Calculate.
func (h *Handler) Rules() []validation.Rule[Request] {
	if h.strictOperators {
		return []validation.Rule[Request]{OperatorRule}
	}
	return nil
}

// Calculate godoc
// @Summary Apply an arithmetic operator to two values
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body Request true "Operands and operator"
// @Success 200 {object} apierror.Body
// @Failure 400 {object} apierror.ErrorBody
// @Router /calculate [post]
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, _ := validation.BodyFrom[Request](r.Context())
	log.Debugf("Calculating %v %s %v", req.Val1, req.Operator, req.Val2)

	result, err := Calculate(req.Val1, req.Val2, req.Operator)
	if err != nil {
		apierror.Write(w, err)
		return
	}
	apierror.WriteJSON(w, http.StatusOK, Result{Result: result})
}
