package glasscube

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/mailer"
	"github.com/glasscube/glasscube/validator"
	"github.com/glasscube/glasscube/views"
)

func validateContact(f views.ContactForm) *validator.Validator {
	v := validator.New()
	v.Check(validator.NotBlank(f.Name), "name", "must be provided")
	v.Check(validator.MaxChars(f.Name, 100), "name", "must not be more than 100 characters long")
	v.Check(validator.NotBlank(f.Email), "email", "must be provided")
	v.Check(validator.Matches(f.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(validator.MaxChars(f.Subject, 200), "subject", "must not be more than 200 characters long")
	v.Check(validator.NotBlank(f.Message), "message", "must be provided")
	v.Check(validator.MaxChars(f.Message, 5000), "message", "must not be more than 5000 characters long")
	return v
}

func (a *App) contactPage(c echo.Context) views.Page {
	p := a.page(c, "contact", views.PageMeta{URL: BuildURL(a.Config.URL, "contact")})
	p.Meta.Title = p.Loc.T("contact.title")
	return p
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact(a.contactPage(c), views.ContactForm{}))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	form := views.ContactForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Subject: strings.TrimSpace(c.FormValue("subject")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	p := a.contactPage(c)

	if v := validateContact(form); !v.Valid() {
		form.Errors = v.Errors
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Contact(p, form))
	}

	err := a.Mailer.Send(c.Request().Context(), mailer.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Body:    form.Message,
	})
	if err != nil {
		c.Logger().Errorf("contact: %v", err)
		p.Toast = p.Loc.T("contact.failed")
		return RenderStatus(c, http.StatusBadGateway, a.Views.Contact(p, form))
	}
	return Render(c, a.Views.Contact(p, views.ContactForm{Sent: true}))
}
