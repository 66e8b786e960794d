package query

import "fmt"

// Condition represents a WHERE clause condition rendered with Spanner
// named parameters (@p0, @p1, ...).
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex is the index of
	// the first parameter name the condition may use.
	SQL(paramIndex int) (string, map[string]interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq matches rows where field equals value.
// Example: Eq("is_active", true) generates "is_active = @p0"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, paramName), map[string]interface{}{
		paramName: c.value,
	}
}
