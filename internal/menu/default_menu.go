package menu

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func choice(name, delta string) OptionChoice {
	return OptionChoice{Name: name, PriceDelta: price(delta)}
}

func group(name string, choices ...OptionChoice) OptionGroup {
	return OptionGroup{Name: name, Choices: choices}
}

func placeholder(text string) string {
	return "https://via.placeholder.com/300?text=" + text
}

// DefaultItems is the house menu served when no menu document is configured.
func DefaultItems() []Item {
	return []Item{
		{
			ID:          1,
			Name:        "Classic Cheeseburger",
			Description: "Juicy beef patty with melted cheddar cheese, lettuce, tomato, and our special sauce.",
			BasePrice:   price("12.99"),
			Category:    "Burgers",
			Image:       placeholder("Cheeseburger"),
			Allergens:   []string{"Gluten", "Dairy", "Soy"},
			Nutrition:   &Nutrition{Calories: 650, Protein: 35, Carbs: 40, Fat: 38},
			Options: []OptionGroup{
				group("Cooking Preference", choice("Medium Rare", "0"), choice("Medium", "0"), choice("Well Done", "0")),
				group("Add-ons", choice("Extra Cheese", "1.50"), choice("Bacon", "2.00"), choice("Avocado", "2.50")),
			},
		},
		{
			ID:          2,
			Name:        "Margherita Pizza",
			Description: "Traditional pizza with tomato sauce, fresh mozzarella, and basil.",
			BasePrice:   price("14.99"),
			Category:    "Pizza",
			Image:       placeholder("Pizza"),
			Allergens:   []string{"Gluten", "Dairy"},
			Nutrition:   &Nutrition{Calories: 740, Protein: 28, Carbs: 86, Fat: 32},
			Options: []OptionGroup{
				group("Size", choice(`Small (10")`, "-2.00"), choice(`Medium (12")`, "0"), choice(`Large (14")`, "3.00")),
				group("Crust", choice("Thin", "0"), choice("Regular", "0"), choice("Thick", "1.00")),
			},
		},
		{
			ID:          3,
			Name:        "Caesar Salad",
			Description: "Crisp romaine lettuce with Caesar dressing, croutons, and parmesan cheese.",
			BasePrice:   price("9.99"),
			Category:    "Salads",
			Image:       placeholder("Salad"),
			Allergens:   []string{"Gluten", "Dairy", "Eggs"},
			Nutrition:   &Nutrition{Calories: 320, Protein: 10, Carbs: 15, Fat: 25},
			Options: []OptionGroup{
				group("Protein", choice("No Protein", "0"), choice("Grilled Chicken", "4.00"), choice("Grilled Shrimp", "5.00")),
				group("Dressing", choice("Regular", "0"), choice("Light", "0"), choice("On the Side", "0")),
			},
		},
		{
			ID:          4,
			Name:        "Chicken Fettuccine Alfredo",
			Description: "Fettuccine pasta with creamy Alfredo sauce and grilled chicken breast.",
			BasePrice:   price("16.99"),
			Category:    "Pasta",
			Image:       placeholder("Pasta"),
			Allergens:   []string{"Gluten", "Dairy", "Eggs"},
			Nutrition:   &Nutrition{Calories: 860, Protein: 42, Carbs: 72, Fat: 48},
			Options: []OptionGroup{
				group("Pasta Type", choice("Fettuccine", "0"), choice("Penne", "0"), choice("Whole Wheat", "1.00")),
				group("Add-ons", choice("Extra Chicken", "3.50"), choice("Broccoli", "1.50"), choice("Mushrooms", "1.50")),
			},
		},
		{
			ID:          5,
			Name:        "Veggie Wrap",
			Description: "Whole wheat wrap with hummus, mixed greens, roasted vegetables, and feta cheese.",
			BasePrice:   price("10.99"),
			Category:    "Sandwiches",
			Image:       placeholder("Wrap"),
			Allergens:   []string{"Gluten", "Dairy"},
			Nutrition:   &Nutrition{Calories: 420, Protein: 12, Carbs: 58, Fat: 18},
			Options: []OptionGroup{
				group("Wrap Type", choice("Whole Wheat", "0"), choice("Spinach", "0"), choice("Gluten-Free", "1.50")),
				group("Add-ons", choice("Avocado", "2.00"), choice("Extra Feta", "1.00")),
			},
		},
		{
			ID:          6,
			Name:        "French Fries",
			Description: "Crispy golden French fries served with ketchup.",
			BasePrice:   price("4.99"),
			Category:    "Sides",
			Image:       placeholder("Fries"),
			Allergens:   []string{"None"},
			Nutrition:   &Nutrition{Calories: 380, Protein: 4, Carbs: 48, Fat: 20},
			Options: []OptionGroup{
				group("Size", choice("Small", "-1.00"), choice("Regular", "0"), choice("Large", "1.50")),
				group("Seasoning", choice("Regular Salt", "0"), choice("Garlic Parmesan", "1.00"), choice("Cajun", "1.00")),
			},
		},
		{
			ID:          7,
			Name:        "Chocolate Milkshake",
			Description: "Rich and creamy chocolate milkshake topped with whipped cream.",
			BasePrice:   price("6.99"),
			Category:    "Beverages",
			Image:       placeholder("Milkshake"),
			Allergens:   []string{"Dairy"},
			Nutrition:   &Nutrition{Calories: 550, Protein: 10, Carbs: 72, Fat: 28},
			Options: []OptionGroup{
				group("Size", choice("Regular", "0"), choice("Large", "1.50")),
				group("Add-ons", choice("No Whipped Cream", "0"), choice("Extra Whipped Cream", "0.50"), choice("Chocolate Syrup", "0.50"), choice("Cherry on Top", "0.25")),
			},
		},
		{
			ID:          8,
			Name:        "Grilled Salmon",
			Description: "Fresh Atlantic salmon fillet grilled to perfection with lemon herb butter.",
			BasePrice:   price("19.99"),
			Category:    "Main Courses",
			Image:       placeholder("Salmon"),
			Allergens:   []string{"Fish", "Dairy"},
			Nutrition:   &Nutrition{Calories: 480, Protein: 42, Carbs: 2, Fat: 34},
			Options: []OptionGroup{
				group("Side Options", choice("Steamed Vegetables", "0"), choice("Mashed Potatoes", "0"), choice("Rice Pilaf", "0"), choice("House Salad", "1.50")),
				group("Cooking Preference", choice("Medium Rare", "0"), choice("Medium", "0"), choice("Well Done", "0")),
			},
		},
		{
			ID:          9,
			Name:        "BBQ Chicken Wings",
			Description: "Tender chicken wings tossed in our signature BBQ sauce.",
			BasePrice:   price("13.99"),
			Category:    "Appetizers",
			Image:       placeholder("Wings"),
			Allergens:   []string{"None"},
			Nutrition:   &Nutrition{Calories: 620, Protein: 38, Carbs: 18, Fat: 44},
			Options: []OptionGroup{
				group("Size", choice("6 pieces", "-3.00"), choice("12 pieces", "0"), choice("18 pieces", "6.00")),
				group("Sauce", choice("BBQ", "0"), choice("Buffalo", "0"), choice("Honey Garlic", "0"), choice("Teriyaki", "0.50")),
			},
		},
		{
			ID:          10,
			Name:        "Vegetable Stir Fry",
			Description: "Fresh mixed vegetables stir-fried in a savory sauce, served over steamed rice.",
			BasePrice:   price("12.99"),
			Category:    "Main Courses",
			Image:       placeholder("StirFry"),
			Allergens:   []string{"Soy", "Gluten"},
			Nutrition:   &Nutrition{Calories: 380, Protein: 8, Carbs: 64, Fat: 12},
			Options: []OptionGroup{
				group("Base", choice("White Rice", "0"), choice("Brown Rice", "1.00"), choice("Noodles", "1.50")),
				group("Protein", choice("No Protein", "0"), choice("Tofu", "2.00"), choice("Chicken", "3.00"), choice("Beef", "4.00")),
			},
		},
		{
			ID:          11,
			Name:        "Apple Pie",
			Description: "Homemade apple pie with a flaky crust, served warm with vanilla ice cream.",
			BasePrice:   price("7.99"),
			Category:    "Desserts",
			Image:       placeholder("ApplePie"),
			Allergens:   []string{"Gluten", "Dairy"},
			Nutrition:   &Nutrition{Calories: 430, Protein: 4, Carbs: 58, Fat: 22},
			Options: []OptionGroup{
				group("Serving", choice("Plain", "0"), choice("With Whipped Cream", "1.00"), choice("With Ice Cream", "2.00")),
			},
		},
		{
			ID:          12,
			Name:        "Iced Tea",
			Description: "Refreshing house-brewed iced tea.",
			BasePrice:   price("2.99"),
			Category:    "Beverages",
			Image:       placeholder("IcedTea"),
			Allergens:   []string{"None"},
			Nutrition:   &Nutrition{Calories: 0, Protein: 0, Carbs: 0, Fat: 0},
			Options: []OptionGroup{
				group("Type", choice("Unsweetened", "0"), choice("Sweetened", "0")),
				group("Flavor", choice("Regular", "0"), choice("Peach", "0.50"), choice("Raspberry", "0.50")),
			},
		},
	}
}
