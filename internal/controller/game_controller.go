package controller

import (
	"errors"
	"log/slog"

	"github.com/benbeisheim/chess/internal/model"
	"github.com/benbeisheim/chess/internal/service"
	"github.com/benbeisheim/chess/internal/storage"
	"github.com/benbeisheim/chess/internal/ws"
	"github.com/gofiber/fiber/v2"
)

var log = slog.Default().With("package", "controller")

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Register mounts the game routes on r.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/matchmaking/join", gc.JoinMatchmaking)
	r.Post("/matchmaking/leave", gc.LeaveMatchmaking)
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Post("/load/:saveId", gc.LoadGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/moves/:square", gc.GetValidMoves)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Post("/:gameId/resign", gc.Resign)
	r.Post("/:gameId/draw", gc.Draw)
	r.Post("/:gameId/save", gc.SaveGame)
}

// statusFor maps service and rules errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotAPlayer), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver), errors.Is(err, service.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued), errors.Is(err, model.ErrNoDrawOffer),
		errors.Is(err, service.ErrAlreadyConnected):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrPromotionRequired), errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, model.ErrInvalidCoordinate), errors.Is(err, storage.ErrInvalidSlot):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrSavesDisabled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetValidMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.ValidMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return fail(c, err)
	}
	squares := make([]string, 0, len(moves))
	for _, m := range moves {
		squares = append(squares, m.String())
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  squares,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var body ws.MovePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	ply, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ply)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	if err := gc.gameService.Resign(c.Params("gameId"), playerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "resigned"})
}

// Draw offers a draw, or answers the opponent's offer when the body carries
// {"accept": bool}.
func (gc *GameController) Draw(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if len(c.Body()) > 0 {
		var body ws.DrawPayload
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid draw body",
			})
		}
		if err := gc.gameService.AnswerDraw(gameID, playerID(c), body.Accept); err != nil {
			return fail(c, err)
		}
		if body.Accept {
			return c.JSON(fiber.Map{"status": "drawn"})
		}
		return c.JSON(fiber.Map{"status": "declined"})
	}
	if err := gc.gameService.OfferDraw(gameID, playerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "offered"})
}

func (gc *GameController) SaveGame(c *fiber.Ctx) error {
	saveID, err := gc.gameService.SaveGame(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game saved",
		"save_id": saveID,
	})
}

func (gc *GameController) LoadGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.LoadGame(c.Params("saveId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game loaded",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(playerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	if !gc.gameService.LeaveMatchmaking(playerID(c)) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not queued",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
