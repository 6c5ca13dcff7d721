package controller

import (
	"net/http"
	"strconv"

	"github.com/adilet/campaign-sender/log"
	"github.com/adilet/campaign-sender/service"
	"github.com/adilet/campaign-sender/service/dto"
	"github.com/labstack/echo/v4"
)

// CreateCampaign godoc
// @Summary Create campaign
// @Description Creates a bulk-send campaign and schedules it for execution
// @Accept json
// @Produce json
// @Param campaign body dto.Campaign true "Campaign"
// @Success 200 {object} dto.Id
// @Failure 400 "error description"
// @Router /campaigns [post]
func GetCreateCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		campaign := new(dto.Campaign)
		if err := c.Bind(campaign); err != nil {
			return err
		}

		id, err := srv.CreateCampaign(*campaign)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, id)
	}
}

// CheckCampaign godoc
// @Summary Check campaign
// @Description Returns campaign status and send counters
// @Produce json
// @Param id path int true "Campaign id"
// @Success 200 {object} dto.CampaignStatus
// @Failure 404 "campaign not found"
// @Router /campaigns/{id} [get]
func GetCheckCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseId(c.Param("id"))
		if err != nil {
			return err
		}

		status, err := srv.GetCampaignStatus(id)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, status)
	}
}

// DeleteCampaign godoc
// @Summary Delete campaign
// @Description Cancels the pending trigger and removes the campaign
// @Param id path int true "Campaign id"
// @Success 200
// @Failure 400 "error description"
// @Router /campaigns/{id} [delete]
func GetDeleteCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseId(c.Param("id"))
		if err != nil {
			return err
		}

		if err := srv.DeleteCampaign(id); err != nil {
			return mapError(c, err)
		}

		return c.NoContent(http.StatusOK)
	}
}

// ResumeCampaign godoc
// @Summary Resume campaign
// @Description Reschedules a paused or failed campaign, it resumes from the stored cursor
// @Param id path int true "Campaign id"
// @Success 200
// @Failure 400 "error description"
// @Router /campaigns/{id}/resume [post]
func GetResumeCampaignFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseId(c.Param("id"))
		if err != nil {
			return err
		}

		if err := srv.ResumeCampaign(id); err != nil {
			return mapError(c, err)
		}

		return c.NoContent(http.StatusOK)
	}
}

// CreateContactList godoc
// @Summary Create contact list
// @Description Creates a contact list with its contacts
// @Accept json
// @Produce json
// @Param list body dto.ContactList true "Contact list"
// @Success 200 {object} dto.Id
// @Failure 400 "error description"
// @Router /contact-lists [post]
func GetCreateContactListFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list := new(dto.ContactList)
		if err := c.Bind(list); err != nil {
			return err
		}

		id, err := srv.CreateContactList(*list)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, id)
	}
}

// CreateTemplate godoc
// @Summary Create template
// @Description Creates a message template with a name placeholder
// @Accept json
// @Produce json
// @Param template body dto.Template true "Template"
// @Success 200 {object} dto.Id
// @Failure 400 "error description"
// @Router /templates [post]
func GetCreateTemplateFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		template := new(dto.Template)
		if err := c.Bind(template); err != nil {
			return err
		}

		id, err := srv.CreateTemplate(*template)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, id)
	}
}

// RegisterMedia godoc
// @Summary Register media
// @Description Registers a media file already present on disk
// @Accept json
// @Produce json
// @Param media body dto.Media true "Media"
// @Success 200 {object} dto.Id
// @Failure 400 "error description"
// @Router /media [post]
func GetRegisterMediaFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		media := new(dto.Media)
		if err := c.Bind(media); err != nil {
			return err
		}

		id, err := srv.RegisterMedia(*media)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, id)
	}
}

// RegisterSession godoc
// @Summary Register gateway session
// @Description Stores the gateway session identifier of a user
// @Accept json
// @Produce json
// @Param session body dto.Session true "Session"
// @Success 200 {object} dto.Id
// @Failure 400 "error description"
// @Router /sessions [put]
func GetRegisterSessionFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := new(dto.Session)
		if err := c.Bind(session); err != nil {
			return err
		}

		id, err := srv.RegisterSession(*session)
		if err != nil {
			return mapError(c, err)
		}

		return c.JSON(http.StatusOK, id)
	}
}

func parseId(raw string) (uint32, error) {
	id64, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id "+raw)
	}
	return uint32(id64), nil
}

func mapError(c echo.Context, err error) error {
	switch err.(type) {
	case *service.InvalidPayloadErr:
		return c.String(http.StatusBadRequest, err.Error())
	default:
		if err.Error() == "not found" {
			return c.String(http.StatusNotFound, "Not found")
		}
		log.Error.Println(err)
		return c.String(http.StatusInternalServerError, "System malfunction. Please, try later")
	}
}
