package owmtest

import "github.com/gofiber/fiber/v2"

// London returns a current-weather body for London, GB.
func London() fiber.Map {
	return fiber.Map{
		"name": "London",
		"sys": fiber.Map{
			"country": "GB",
			"sunrise": 1700000000,
			"sunset":  1700040000,
		},
		"main": fiber.Map{
			"temp":       15.2,
			"feels_like": 14.0,
			"humidity":   80,
			"pressure":   1012,
		},
		"weather": []fiber.Map{
			{"description": "clear sky", "icon": "01d"},
		},
		"wind": fiber.Map{"speed": 3.1},
	}
}

// CityNotFound is the body the API sends with a 404.
func CityNotFound() fiber.Map {
	return fiber.Map{"cod": "404", "message": "city not found"}
}

// InvalidKey is the body the API sends with a 401.
func InvalidKey() fiber.Map {
	return fiber.Map{
		"cod":     401,
		"message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info.",
	}
}
