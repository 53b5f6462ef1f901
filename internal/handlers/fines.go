package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fineboard/internal/models"
	"fineboard/internal/repository"
	"fineboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	noticeFineRecorded = "Fine recorded."
	noticeFineRemoved  = "Fine removed."
	noticeFineNotFound = "Fine not found."
	noticeRemoveFailed = "Failed to remove fine."
)

// initBoard seeds the demo users and sample fines. The schema itself is
// ensured when the database is opened at startup, so repeated calls only
// re-check the table counts and change nothing.
func (h *Handler) initBoard(c *gin.Context) {
	users, err := h.services.SeedUsers()
	if err != nil {
		h.logAndPlainError(c, "init_seed_users_failed", err)
		return
	}
	fines, err := h.services.SeedFines(c.Request.Context())
	if err != nil {
		h.logAndPlainError(c, "init_seed_fines_failed", err)
		return
	}
	c.String(http.StatusOK, "Database initialized: %d demo users, %d sample fines. Go to /login.", users, fines)
}

// index renders the full fine list, newest first.
func (h *Handler) index(c *gin.Context) {
	user := currentUser(c)
	fines, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logAndPlainError(c, "fines_list_failed", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", indexData{
		User:       user,
		Flash:      takeFlash(c),
		Fines:      fines,
		CanPropose: user.Role == models.RoleUpper,
	})
}

func (h *Handler) addForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", addData{
		User:      currentUser(c),
		Flash:     takeFlash(c),
		Offenders: offenders,
	})
}

func (h *Handler) addFine(c *gin.Context) {
	user := currentUser(c)
	in := service.CreateFineInput{
		Offender:    c.PostForm("offender"),
		Description: c.PostForm("description"),
		AmountRaw:   c.PostForm("amount"),
		ProposerID:  user.ID, // the gated caller, never form-selected
	}

	if _, err := h.services.Create(c.Request.Context(), in); err != nil {
		if isValidationError(err) {
			c.HTML(http.StatusBadRequest, "add.html", addData{
				User:        user,
				Error:       err.Error(),
				Offenders:   offenders,
				Offender:    in.Offender,
				Description: in.Description,
				Amount:      in.AmountRaw,
			})
			return
		}
		h.logAndPlainError(c, "fine_create_failed", err)
		return
	}

	setFlash(c, noticeFineRecorded)
	c.Redirect(http.StatusSeeOther, "/")
}

// totals renders the per-offender aggregation; warnings are invisible to it.
func (h *Handler) totals(c *gin.Context) {
	totals, err := h.services.Totals(c.Request.Context())
	if err != nil {
		h.logAndPlainError(c, "fine_totals_failed", err)
		return
	}
	c.HTML(http.StatusOK, "totals.html", totalsData{
		User:       currentUser(c),
		Flash:      takeFlash(c),
		Totals:     totals.Rows,
		GrandTotal: totals.GrandTotal,
	})
}

// removeFine deletes a fine. Open to any authenticated caller: cleanup is a
// shared-trust operation even though creation is not.
func (h *Handler) removeFine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		setFlash(c, noticeFineNotFound)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFineNotFound) {
			setFlash(c, noticeFineNotFound)
		} else {
			if h.log != nil {
				h.log.Errorw("fine_delete_failed", "fine_id", id, "err", err)
			}
			setFlash(c, noticeRemoveFailed)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	setFlash(c, noticeFineRemoved)
	c.Redirect(http.StatusSeeOther, "/")
}

// isValidationError reports whether err should be surfaced on the form
// rather than treated as a server failure.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrMissingOffender) ||
		errors.Is(err, service.ErrMissingDescription) ||
		errors.Is(err, service.ErrInvalidAmount)
}

// logAndPlainError logs the failure and answers with a terse 500. Nothing at
// this layer is fatal to the process.
func (h *Handler) logAndPlainError(c *gin.Context, logKey string, err error) {
	if h.log != nil {
		h.log.Errorw(logKey, "request_id", c.GetString(requestIDKey), "err", err)
	}
	c.String(http.StatusInternalServerError, "something went wrong")
}
