package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/policy"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Create declares a weekly availability slot
// @Summary Create doctor schedule
// @Tags DoctorSchedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor-schedules [post]
func (h *DoctorScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat, usecase.ErrInvalidTimeRange:
			response.BadRequest(w, err.Error())
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrScheduleSlotTaken:
			response.Conflict(w, "Schedule slot already exists for this doctor")
		case policy.ErrForbidden:
			response.Forbidden(w, "")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to create schedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

// List returns availability slots, optionally filtered by doctor
// @Summary List doctor schedules
// @Tags DoctorSchedules
// @Security BearerAuth
// @Produce json
// @Param doctor_id query string false "Doctor ID"
// @Success 200 {object} response.Response
// @Router /doctor-schedules [get]
func (h *DoctorScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleUsecase.List(r.Context(), r.URL.Query().Get("doctor_id"))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.BadRequest(w, "Invalid doctor id")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to list schedules")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// Delete removes an availability slot
// @Summary Delete doctor schedule
// @Tags DoctorSchedules
// @Security BearerAuth
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor-schedules/{id} [delete]
func (h *DoctorScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid schedule ID")
		return
	}

	if err := h.scheduleUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		case policy.ErrForbidden:
			response.Forbidden(w, "")
		case policy.ErrUnauthorized:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to delete schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}
