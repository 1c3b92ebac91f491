package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	enquiryUC "github.com/trafylabs/academy-api/internal/application/usecase/enquiry"
	"github.com/trafylabs/academy-api/internal/ui"
	"github.com/trafylabs/academy-api/internal/ui/notice"
)

const enquiryThanksText = "Thank you for submitting the form."

type EnquiryHandler struct {
	submitUseCase *enquiryUC.SubmitUseCase
	registry      *ui.Registry
}

func NewEnquiryHandler(submitUC *enquiryUC.SubmitUseCase, registry *ui.Registry) *EnquiryHandler {
	return &EnquiryHandler{submitUseCase: submitUC, registry: registry}
}

// SubmitEnquiry handles a course enquiry form. Validation rejects the form
// before any network call; success raises the thank-you notice and the
// client clears the fields.
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {

	var req EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	uiSession := h.registry.Get(GetSessionID(c))
	if !uiSession.BeginSubmit() {
		c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress"})
		return
	}
	defer uiSession.EndSubmit()

	output, err := h.submitUseCase.Execute(c.Request.Context(), enquiryUC.SubmitInput{
		Course:    req.Course,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		SinkURL:   req.SinkURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	uiSession.Notices.Show(enquiryThanksText, notice.FormDuration)

	c.JSON(http.StatusCreated, gin.H{
		"enquiry_id": output.EnquiryID,
		"notice":     gin.H{"text": enquiryThanksText, "visible": true},
	})
}
