package cmd

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB           *gorm.DB
	uowFactory       postgres.GormUnitOfWorkFactory
	catalog          *productrepo.GormProductCatalog
	pricing          services.PricingCalculator
	progress         services.ProgressCalculator
	activeOrderLimit int
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	taxRate, err := decimal.NewFromString(config.TaxRate)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid tax rate %q: %w", config.TaxRate, err)
	}

	shippingFee, err := kernel.NewMoneyFromString(config.ShippingFee)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid shipping fee %q: %w", config.ShippingFee, err)
	}

	pricing, err := services.NewPricingCalculator(taxRate, shippingFee)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid pricing configuration: %w", err)
	}

	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:          productrepo.NewGormProductCatalog(gormDB),
		pricing:          pricing,
		progress:         services.NewProgressCalculator(),
		activeOrderLimit: config.ActiveOrderLimit,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.catalog, c.pricing)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.createTaskUoWFactory(), c.activeOrderLimit)
}

func (c *CompositionRoot) CreateUnclaimOrderCommandHandler() commands.UnclaimOrderCommandHandler {
	return commands.NewUnclaimOrderCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartPickTaskCommandHandler() commands.StartPickTaskCommandHandler {
	return commands.NewStartPickTaskCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePickedQuantityCommandHandler() commands.UpdatePickedQuantityCommandHandler {
	return commands.NewUpdatePickedQuantityCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateCompletePickTaskCommandHandler() commands.CompletePickTaskCommandHandler {
	return commands.NewCompletePickTaskCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateSkipPickTaskCommandHandler() commands.SkipPickTaskCommandHandler {
	return commands.NewSkipPickTaskCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateRevertSkipPickTaskCommandHandler() commands.RevertSkipPickTaskCommandHandler {
	return commands.NewRevertSkipPickTaskCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateUndoPickCommandHandler() commands.UndoPickCommandHandler {
	return commands.NewUndoPickCommandHandler(c.createTaskUoWFactory())
}

func (c *CompositionRoot) CreateReleaseBackordersCommandHandler() commands.ReleaseBackordersCommandHandler {
	return commands.NewReleaseBackordersCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueueQueryHandler() queries.GetOrderQueueQueryHandler {
	return queries.NewGetOrderQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.gormDB, c.progress)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createTaskUoWFactory() commands.TaskUoWFactory {
	return FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
