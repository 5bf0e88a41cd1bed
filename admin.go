package sitepanel

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/sitepanel/applier"
	"github.com/eringen/sitepanel/siteconfig"
)

func (a *App) handleLoginPage(c echo.Context) error {
	next := SafeReturnPath(c.QueryParam("next"))
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return a.renderLogin(c, http.StatusOK, false, next)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	next := SafeReturnPath(c.FormValue("next"))
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, next)
	}
	a.loginLimiter.Record(ip)
	return a.renderLogin(c, http.StatusUnauthorized, true, next)
}

func (a *App) renderLogin(c echo.Context, code int, showError bool, next string) error {
	return RenderStatus(c, code, a.Views.AdminLogin(LoginPage{
		Meta:      a.pageMeta(a.Applier.Snapshot(), loginPath, "Logowanie"),
		ShowError: showError,
		Next:      next,
		CSRFToken: CsrfToken(c),
	}))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleDashboard(c echo.Context) error {
	return a.renderDashboard(c, c.QueryParam("msg"))
}

func (a *App) renderDashboard(c echo.Context, msg string) error {
	snap := a.Applier.Snapshot()
	page := DashboardPage{
		Meta:      a.pageMeta(snap, adminHome, "Panel administracyjny"),
		Config:    snap.Config,
		Links:     featureCards(snap),
		Message:   msg,
		CSRFToken: CsrfToken(c),
	}
	ratio, err := applier.ContrastRatio(snap.Config.Colors.Text, snap.Config.Colors.Background)
	if err != nil {
		c.Logger().Warnf("contrast check: %v", err)
	} else {
		page.Contrast = ratio
		page.LowContrast = ratio < applier.MinTextContrast
	}
	return Render(c, a.Views.AdminDashboard(page))
}

// handleInstaller opens the editor on the current configuration. Leaving the
// page without confirming never touches the store.
func (a *App) handleInstaller(c echo.Context) error {
	cfg := a.Store.Load(c.Request().Context())
	return a.renderInstaller(c, http.StatusOK, cfg, nil)
}

// handleInstallerConfirm is the editor's single confirm action: the submitted
// draft is validated, uploads are stored, and the whole config is saved.
func (a *App) handleInstallerConfirm(c echo.Context) error {
	ctx := c.Request().Context()
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	draft := draftFromForm(form, a.Store.Load(ctx))

	if err := siteconfig.Validate(draft); err != nil {
		return a.rejectDraft(c, draft, err)
	}

	// Both images are processed before either is written.
	fieldErrs := map[string]string{}
	uploads := []struct {
		field, prefix string
		maxWidth      int
		dst           *string
	}{
		{"logo.file", "logo", logoMaxWidth, &draft.Logo.Path},
		{"banner.file", "banner", bannerMaxWidth, &draft.Banner.URL},
	}
	var pending []*pendingImage
	var dsts []*string
	for _, up := range uploads {
		fh, err := formImage(c, up.field)
		if err != nil {
			return err
		}
		if fh == nil {
			continue
		}
		img, err := prepareImage(fh, up.prefix, up.maxWidth)
		switch {
		case errors.Is(err, errUploadTooLarge), errors.Is(err, errInvalidImage):
			fieldErrs[up.field] = err.Error()
		case err != nil:
			return err
		default:
			pending = append(pending, img)
			dsts = append(dsts, up.dst)
		}
	}
	if len(fieldErrs) > 0 {
		return a.renderInstaller(c, http.StatusUnprocessableEntity, draft, fieldErrs)
	}

	written, err := a.writeImages(pending)
	if err != nil {
		return err
	}
	for i, p := range written {
		*dsts[i] = p
	}

	if err := a.Store.Save(ctx, draft); err != nil {
		a.removeImages(written)
		return a.rejectDraft(c, draft, err)
	}
	return Render(c, a.Views.InstallerSaved(SavedPage{
		Meta:       a.pageMeta(a.Applier.Snapshot(), "/admin/installer/", "Konfiguracja zapisana"),
		RedirectTo: adminHome,
		Delay:      a.Config.RedirectDelay,
	}))
}

// rejectDraft re-renders the editor with inline messages for a validation
// error; any other error is returned as is.
func (a *App) rejectDraft(c echo.Context, draft siteconfig.SiteConfig, err error) error {
	var verr *siteconfig.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return a.renderInstaller(c, http.StatusUnprocessableEntity, draft, verr.Messages())
}

func (a *App) renderInstaller(c echo.Context, code int, draft siteconfig.SiteConfig, errs map[string]string) error {
	return RenderStatus(c, code, a.Views.Installer(InstallerPage{
		Meta:      a.pageMeta(a.Applier.Snapshot(), "/admin/installer/", "Instalator systemu"),
		Draft:     draft,
		Modules:   moduleFields(draft),
		Colors:    colorFields(draft),
		Errors:    errs,
		CSRFToken: CsrfToken(c),
	}))
}

func (a *App) handleReset(c echo.Context) error {
	if _, err := a.Store.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, adminHome+"?msg=reset")
}
