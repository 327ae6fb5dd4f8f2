package cards

import (
	"log"

	"github.com/Kyz7/portfolio/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

// Stored text ends up injected into the built page markup, so it is
// sanitized once here at the save boundary.
var policy = bluemonday.UGCPolicy()

var store *Store

func Init(dataFile string) {
	store = NewStore(dataFile)
}

// DefaultStore returns the store the handlers persist to.
func DefaultStore() *Store {
	return store
}

func ListCardsHandler(c *fiber.Ctx) error {
	sequence, err := store.Load()
	if err != nil {
		log.Println("Error loading cards:", err)
		return response.InternalError(c, "Failed to load cards")
	}
	return c.JSON(sequence)
}

func SaveCardsHandler(c *fiber.Ctx) error {
	var sequence []Card
	if err := c.BodyParser(&sequence); err != nil {
		return response.BadRequest(c, "Invalid card data")
	}

	for i := range sequence {
		sequence[i].Title = policy.Sanitize(sequence[i].Title)
		sequence[i].Description = policy.Sanitize(sequence[i].Description)
		sequence[i].Tag = policy.Sanitize(sequence[i].Tag)
	}

	if err := store.Save(sequence); err != nil {
		log.Println("Error saving cards:", err)
		return response.InternalError(c, "Failed to save cards")
	}
	return response.Success(c)
}
