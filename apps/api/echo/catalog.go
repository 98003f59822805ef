package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bizdesk/backoffice/core/catalog"
)

type catalogApi struct {
	svc catalog.Service
}

func registerCatalogAPI(g *echo.Group, svc catalog.Service) {
	api := catalogApi{svc: svc}

	pg := g.Group("/products")
	pg.POST("", api.productCreate)
	pg.GET("", api.productQuery)
	pg.GET("/:id", api.productRetrieve)
	pg.PUT("/:id", api.productUpdate)
	pg.DELETE("/:id", api.productDestroy)

	cg := g.Group("/customers")
	cg.POST("", api.customerCreate)
	cg.GET("", api.customerQuery)
	cg.GET("/:id", api.customerRetrieve)
	cg.PUT("/:id", api.customerUpdate)
	cg.DELETE("/:id", api.customerDestroy)
}

// Handlers

func (api *catalogApi) productCreate(ctx echo.Context) error {
	var data catalog.NewProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProduct")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	prd, err := api.svc.CreateProduct(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, prd)
}

func (api *catalogApi) productQuery(ctx echo.Context) error {
	var filter catalog.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	prds, err := api.svc.FilterProducts(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prds)
}

func (api *catalogApi) productRetrieve(ctx echo.Context) error {
	prd, err := api.svc.GetProduct(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prd)
}

func (api *catalogApi) productUpdate(ctx echo.Context) error {
	prd, err := api.svc.GetProduct(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data catalog.UpdateProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProduct")
	}
	if err := data.Validate(prd); err != nil {
		return err
	}

	prd, err = api.svc.UpdateProduct(prd.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prd)
}

func (api *catalogApi) productDestroy(ctx echo.Context) error {
	if err := api.svc.RemoveProduct(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) customerCreate(ctx echo.Context) error {
	var data catalog.NewCustomer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCustomer")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	cust, err := api.svc.CreateCustomer(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cust)
}

func (api *catalogApi) customerQuery(ctx echo.Context) error {
	var filter catalog.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	custs, err := api.svc.FilterCustomers(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, custs)
}

func (api *catalogApi) customerRetrieve(ctx echo.Context) error {
	cust, err := api.svc.GetCustomer(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cust)
}

func (api *catalogApi) customerUpdate(ctx echo.Context) error {
	cust, err := api.svc.GetCustomer(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data catalog.UpdateCustomer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCustomer")
	}
	if err := data.Validate(cust); err != nil {
		return err
	}

	cust, err = api.svc.UpdateCustomer(cust.ID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cust)
}

func (api *catalogApi) customerDestroy(ctx echo.Context) error {
	if err := api.svc.RemoveCustomer(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
