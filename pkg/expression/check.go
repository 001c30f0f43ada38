package expression

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/autobrr/qbtc/pkg/config"
)

// Matches reports whether t passes the filter: every include expression
// matches and no exclude expression does.
func Matches(ctx context.Context, t *config.Torrent, exp *Expressions) (bool, error) {
	if exp.Empty() {
		return true, nil
	}

	if len(exp.Includes) > 0 {
		match, failed, err := CheckTorrentAllMatchWithReason(ctx, t, exp.Includes)
		if err != nil {
			return false, err
		}
		if !match {
			log.Tracef("%s not included: %v", t.Name, failed)
			return false, nil
		}
	}

	excluded, reason, err := CheckTorrentSingleMatchWithReason(ctx, t, exp.Excludes)
	if err != nil {
		return false, err
	}
	if excluded {
		log.Tracef("%s excluded by: %s", t.Name, reason)
		return false, nil
	}

	return true, nil
}

func CheckTorrentSingleMatchWithReason(ctx context.Context, t *config.Torrent, expressions []CompiledExpression) (bool, string, error) {
	for _, expression := range expressions {
		if err := ctx.Err(); err != nil {
			return false, "", err
		}

		result, err := run(expression, t)
		if err != nil {
			return false, "", err
		}

		if result {
			return true, expression.Text, nil
		}
	}

	return false, "", nil
}

func CheckTorrentAllMatchWithReason(ctx context.Context, t *config.Torrent, expressions []CompiledExpression) (bool, []string, error) {
	var failedExpressions []string

	for _, expression := range expressions {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}

		result, err := run(expression, t)
		if err != nil {
			return false, nil, err
		}

		if !result {
			failedExpressions = append(failedExpressions, expression.Text)
		}
	}

	if len(failedExpressions) > 0 {
		return false, failedExpressions, nil
	}

	return true, nil, nil
}

func run(expression CompiledExpression, t *config.Torrent) (bool, error) {
	result, err := expr.Run(expression.Program, t)
	if err != nil {
		return false, fmt.Errorf("check expression %q: %w", expression.Text, err)
	}

	expResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("check expression %q: result is %T, not bool", expression.Text, result)
	}

	return expResult, nil
}
