package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gsolanocr/comercio-api/internal/domain/entity"
	"github.com/gsolanocr/comercio-api/internal/domain/enum"
	"github.com/gsolanocr/comercio-api/internal/domain/repository"
	"github.com/gsolanocr/comercio-api/pkg/apperror"
	"github.com/gsolanocr/comercio-api/pkg/pagination"
)

// StrategyService generates and manages marketing strategies from the
// wizard's answers.
type StrategyService struct {
	strategyRepo repository.StrategyRepository
}

// NewStrategyService creates a new strategy service
func NewStrategyService(strategyRepo repository.StrategyRepository) *StrategyService {
	return &StrategyService{strategyRepo: strategyRepo}
}

// PlanStep is one action item in a generated strategy
type PlanStep struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Week        int    `json:"week"`
}

// channelTable maps each wizard goal to the channels worth investing in.
var channelTable = map[string][]string{
	"atraer_clientes":   {"WhatsApp Business", "Facebook", "Volantes locales"},
	"fidelizar":         {"WhatsApp Business", "Programa de puntos", "Email"},
	"aumentar_ventas":   {"WhatsApp Business", "Instagram", "Promociones"},
	"lanzar_producto":   {"Instagram", "Facebook", "WhatsApp Business"},
	"presencia_digital": {"Instagram", "Facebook", "Google Maps"},
}

// stepTable maps each wizard goal to a four-week action plan.
var stepTable = map[string][]PlanStep{
	"atraer_clientes": {
		{Order: 1, Title: "Perfil de WhatsApp Business", Description: "Complete el catálogo y el mensaje de bienvenida", Week: 1},
		{Order: 2, Title: "Oferta de primera compra", Description: "Defina un descuento para clientes nuevos y publíquelo", Week: 2},
		{Order: 3, Title: "Volanteo en la zona", Description: "Reparta volantes con el enlace de WhatsApp en el barrio", Week: 3},
		{Order: 4, Title: "Medición", Description: "Compare clientes nuevos del mes contra el anterior", Week: 4},
	},
	"fidelizar": {
		{Order: 1, Title: "Lista de mejores clientes", Description: "Identifique a los diez clientes que más compran", Week: 1},
		{Order: 2, Title: "Programa de puntos", Description: "Defina la recompensa por compras repetidas", Week: 2},
		{Order: 3, Title: "Mensajes personalizados", Description: "Escriba a cada cliente frecuente con una oferta a su medida", Week: 3},
		{Order: 4, Title: "Medición", Description: "Revise cuántos clientes repitieron compra", Week: 4},
	},
	"aumentar_ventas": {
		{Order: 1, Title: "Productos estrella", Description: "Identifique los tres productos que más ingresos generan", Week: 1},
		{Order: 2, Title: "Combos y promociones", Description: "Arme combos con los productos estrella", Week: 2},
		{Order: 3, Title: "Difusión", Description: "Publique las promociones en redes y estados de WhatsApp", Week: 3},
		{Order: 4, Title: "Medición", Description: "Compare el ingreso del mes contra el anterior", Week: 4},
	},
	"lanzar_producto": {
		{Order: 1, Title: "Expectativa", Description: "Adelante el lanzamiento en redes sin revelar el producto", Week: 1},
		{Order: 2, Title: "Lanzamiento", Description: "Publique el producto con precio de estreno", Week: 2},
		{Order: 3, Title: "Primeras reseñas", Description: "Pida opinión a los primeros compradores y compártala", Week: 3},
		{Order: 4, Title: "Medición", Description: "Evalúe unidades vendidas contra la meta", Week: 4},
	},
	"presencia_digital": {
		{Order: 1, Title: "Perfiles al día", Description: "Actualice fotos, horarios y datos de contacto en cada red", Week: 1},
		{Order: 2, Title: "Google Maps", Description: "Registre el negocio y pida reseñas a clientes de confianza", Week: 2},
		{Order: 3, Title: "Calendario de publicaciones", Description: "Programe dos publicaciones por semana", Week: 3},
		{Order: 4, Title: "Medición", Description: "Revise seguidores y mensajes recibidos", Week: 4},
	},
}

// GenerateStrategyInput carries the wizard's answers
type GenerateStrategyInput struct {
	UserID         uuid.UUID
	Name           string
	BusinessGoal   string
	TargetAudience string
	MonthlyBudget  int64
}

// GenerateStrategy builds an action plan for the stated goal and stores it
// as a draft. Unknown goals fall back to the attract-clients plan.
func (s *StrategyService) GenerateStrategy(ctx context.Context, input *GenerateStrategyInput) (*entity.Strategy, error) {
	goal := input.BusinessGoal
	channels, ok := channelTable[goal]
	if !ok {
		goal = "atraer_clientes"
		channels = channelTable[goal]
	}
	steps := stepTable[goal]

	channelsJSON, err := json.Marshal(channels)
	if err != nil {
		return nil, err
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = "Estrategia de marketing"
	}

	strategy := &entity.Strategy{
		UserID:         input.UserID,
		Name:           name,
		BusinessGoal:   input.BusinessGoal,
		TargetAudience: input.TargetAudience,
		MonthlyBudget:  input.MonthlyBudget,
		Channels:       datatypes.JSON(channelsJSON),
		Steps:          datatypes.JSON(stepsJSON),
		Status:         enum.StrategyStatusBorrador,
	}

	if err := s.strategyRepo.Create(ctx, strategy); err != nil {
		return nil, err
	}

	return strategy, nil
}

// GetStrategy retrieves a strategy by ID
func (s *StrategyService) GetStrategy(ctx context.Context, id uuid.UUID) (*entity.Strategy, error) {
	strategy, err := s.strategyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, apperror.NewNotFoundError("Strategy")
	}
	return strategy, nil
}

// ListStrategies lists strategies
func (s *StrategyService) ListStrategies(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Strategy], error) {
	strategies, total, err := s.strategyRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(strategies, pag), nil
}

// UpdateStrategyStatus moves a strategy through its lifecycle
func (s *StrategyService) UpdateStrategyStatus(ctx context.Context, id uuid.UUID, status enum.StrategyStatus) (*entity.Strategy, error) {
	strategy, err := s.strategyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, apperror.NewNotFoundError("Strategy")
	}

	strategy.Status = status
	if err := s.strategyRepo.Update(ctx, strategy); err != nil {
		return nil, err
	}

	return strategy, nil
}

// DeleteStrategy deletes a strategy
func (s *StrategyService) DeleteStrategy(ctx context.Context, id uuid.UUID) error {
	strategy, err := s.strategyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if strategy == nil {
		return apperror.NewNotFoundError("Strategy")
	}
	return s.strategyRepo.Delete(ctx, id)
}
