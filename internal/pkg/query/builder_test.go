package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("id", "name_en", "price").
		Build()

	assert.Equal(t, "SELECT id, name_en, price FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("products").Build()

	assert.Equal(t, "SELECT * FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("id").
		Where(Eq("id", "42")).
		Where(Eq("is_active", true)).
		Build()

	assert.Equal(t, "SELECT id FROM products WHERE id = @p0 AND is_active = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "42",
		"p1": true,
	}, stmt.Params)
}

func TestBuilder_OrderBy(t *testing.T) {
	t.Run("single key", func(t *testing.T) {
		stmt := From("products").Select("id").OrderBy("created_at", Desc).Build()
		assert.Equal(t, "SELECT id FROM products ORDER BY created_at DESC", stmt.SQL)
	})

	t.Run("tie breaker", func(t *testing.T) {
		stmt := From("products").
			Select("id").
			OrderBy("created_at", Desc).
			OrderBy("id", Asc).
			Build()
		assert.Equal(t, "SELECT id FROM products ORDER BY created_at DESC, id ASC", stmt.SQL)
	})
}

func TestBuilder_WhereAndOrder(t *testing.T) {
	stmt := From("products").
		Select("id").
		Where(Eq("is_active", true)).
		OrderBy("created_at", Desc).
		Build()

	assert.Equal(t, "SELECT id FROM products WHERE is_active = @p0 ORDER BY created_at DESC", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": true}, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("id")

	stmt1 := base.Where(Eq("is_active", true)).Build()
	stmt2 := base.Where(Eq("id", "1")).OrderBy("created_at", Desc).Build()

	assert.Equal(t, "SELECT id FROM products WHERE is_active = @p0", stmt1.SQL)
	assert.Equal(t, "SELECT id FROM products WHERE id = @p0 ORDER BY created_at DESC", stmt2.SQL)
	assert.Equal(t, "SELECT id FROM products", base.Build().SQL)
}

func TestCondition_EqWithDifferentParamIndex(t *testing.T) {
	sql, params := Eq("name_en", "Oud").SQL(5)

	assert.Equal(t, "name_en = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "Oud"}, params)
}

func TestBuilder_String(t *testing.T) {
	str := From("products").Select("id").Where(Eq("is_active", true)).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "Params:")
}
