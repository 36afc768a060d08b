package dice

//go:generate mockgen -destination=mock/mock_evaluator.go -package=dicemock github.com/cory-johannsen/combat/internal/game/dice Evaluator

import "go.uber.org/zap"

// Evaluator turns a dice formula into a randomized total.
// Every call is an independent draw.
type Evaluator interface {
	Evaluate(formula string) (int, error)
}

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice, modifier and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls a parsed expression and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Ints("dropped", result.Dropped),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Evaluate implements Evaluator.
func (r *Roller) Evaluate(formula string) (int, error) {
	result, err := r.RollExpr(formula)
	if err != nil {
		return 0, err
	}
	return result.Total(), nil
}
