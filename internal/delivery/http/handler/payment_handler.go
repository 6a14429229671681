package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/policy"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

// Create registers the payment for an appointment
// @Summary Create payment
// @Description Register a payment; each appointment carries at most one
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Create Payment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPaymentAlreadyExists:
			response.Conflict(w, "Payment already exists for this appointment")
		case policy.ErrForbidden:
			response.Forbidden(w, "")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to create payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment created successfully", payment)
}

// List returns payments visible to the caller
// @Summary List payments
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param patient_id query string false "Patient ID (non-patient callers)"
// @Param appointment_id query string false "Appointment ID"
// @Param status query string false "Payment status"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := &dto.ListPaymentsQuery{
		PatientID:     r.URL.Query().Get("patient_id"),
		AppointmentID: r.URL.Query().Get("appointment_id"),
		Status:        r.URL.Query().Get("status"),
	}

	payments, err := h.paymentUsecase.List(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidPaymentStatus:
			response.BadRequest(w, err.Error())
		case usecase.ErrUserNotFound, usecase.ErrAppointmentNotFound:
			response.BadRequest(w, "Invalid filter id")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to list payments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}

// Get returns one payment
// @Summary Get payment by ID
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	payment, err := h.paymentUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to get payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment retrieved successfully", payment)
}

// UpdateStatus settles or reverses a payment
// @Summary Update payment status
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.UpdatePaymentStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case usecase.ErrInvalidPaymentStatus:
			response.BadRequest(w, err.Error())
		case policy.ErrForbidden:
			response.Forbidden(w, "")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to update payment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment status updated successfully", payment)
}
