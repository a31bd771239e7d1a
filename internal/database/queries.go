package database

// Catalog queries
const (
	FindMealByIDSQL = `
		SELECT meal_id, name, description, price::text, preparation_minutes, category,
			   restaurant_id, restaurant_name, area, is_vegetarian, calories, is_available
		FROM meals WHERE meal_id = $1
		ORDER BY created_at ASC`

	ListMealsByAreaSQL = `
		SELECT meal_id, name, description, price::text, preparation_minutes, category,
			   restaurant_id, restaurant_name, area, is_vegetarian, calories, is_available
		FROM meals WHERE area = $1 AND is_available = TRUE
		ORDER BY restaurant_name, name`

	InsertMealSQL = `
		INSERT INTO meals (meal_id, name, description, price, preparation_minutes, category,
						   restaurant_id, restaurant_name, area, is_vegetarian, calories, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, number, customer_name, delivery_address, area, phone,
							special_instructions, lines, total_cost, total_preparation_minutes,
							estimated_delivery_minutes, status, restaurant_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	ListOrdersSQL = `
		SELECT id, number, customer_name, delivery_address, area, phone,
			   special_instructions, lines, total_cost::text, total_preparation_minutes,
			   estimated_delivery_minutes, status, restaurant_ids, created_at
		FROM orders
		ORDER BY created_at DESC`
)

// Invalid order sink queries
const (
	InsertInvalidOrderSQL = `
		INSERT INTO invalid_orders (id, reason, order_data, created_at)
		VALUES ($1, $2, $3, $4)`
)
