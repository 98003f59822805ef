package echoapi

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bizdesk/backoffice/core/billing"
)

// Exporter renders an invoice into downloadable formats.
type Exporter interface {
	billing.Renderer
	RenderPDF(w io.Writer, inv billing.Invoice) error
}

type billingApi struct {
	svc    billing.Service
	export Exporter
}

func registerBillingAPI(g *echo.Group, svc billing.Service, export Exporter) {
	api := billingApi{svc: svc, export: export}

	ig := g.Group("/invoices")
	ig.POST("", api.invoiceCreate)
	ig.GET("", api.invoiceQuery)
	ig.GET("/:number", api.invoiceRetrieve)
	ig.GET("/:number/csv", api.invoiceDownloadCSV)
	ig.GET("/:number/pdf", api.invoiceDownloadPDF)

	g.GET("/reports/sales", api.salesReport)
}

// invoiceResponse augments a ledger entry with its derived amounts so clients
// never compute money themselves.
type invoiceResponse struct {
	billing.Invoice
	Totals billing.Totals        `json:"totals"`
	Status billing.PaymentStatus `json:"status"`
}

func (api *billingApi) newInvoiceResponse(inv billing.Invoice) invoiceResponse {
	basis := api.svc.Basis()
	return invoiceResponse{
		Invoice: inv,
		Totals:  inv.Totals(basis).Rounded(),
		Status:  inv.Status(basis),
	}
}

func (api *billingApi) newInvoiceResponses(invs []billing.Invoice) []invoiceResponse {
	res := make([]invoiceResponse, 0, len(invs))
	for _, inv := range invs {
		res = append(res, api.newInvoiceResponse(inv))
	}
	return res
}

// Handlers

func (api *billingApi) invoiceCreate(ctx echo.Context) error {
	var data billing.Draft
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Draft")
	}

	// replay the submitted draft so line merging and clamping apply
	draft := billing.NewEditorFromDraft(data).Draft()

	inv, err := api.svc.Save(draft)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.newInvoiceResponse(inv))
}

func (api *billingApi) invoiceQuery(ctx echo.Context) error {
	var filter billing.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	invs, err := api.svc.Filter(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.newInvoiceResponses(invs))
}

func (api *billingApi) invoiceRetrieve(ctx echo.Context) error {
	inv, err := api.svc.Get(ctx.Param("number"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.newInvoiceResponse(inv))
}

func (api *billingApi) invoiceDownloadCSV(ctx echo.Context) error {
	inv, err := api.svc.Get(ctx.Param("number"))
	if err != nil {
		return err
	}

	var buff bytes.Buffer
	if err = api.export.RenderCSV(&buff, inv); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+inv.Number+".csv")
	return ctx.Blob(http.StatusOK, "text/csv", buff.Bytes())
}

func (api *billingApi) invoiceDownloadPDF(ctx echo.Context) error {
	inv, err := api.svc.Get(ctx.Param("number"))
	if err != nil {
		return err
	}

	var buff bytes.Buffer
	if err = api.export.RenderPDF(&buff, inv); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+inv.Number+".pdf")
	return ctx.Blob(http.StatusOK, "application/pdf", buff.Bytes())
}

func (api *billingApi) salesReport(ctx echo.Context) error {
	rep, err := api.svc.Report()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rep)
}
