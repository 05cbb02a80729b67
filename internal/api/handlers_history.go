package api

import "github.com/gofiber/fiber/v2"

// Undo rolls back the latest mutation. A no-op on an empty stack is not
// an error: the response just carries applied=false.
func (handler *Handler) Undo(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()

	applied := handler.store.Undo()
	if applied {
		handler.checkpoint()
	}
	return c.JSON(fiber.Map{
		"applied":    applied,
		"undo_depth": handler.store.UndoDepth(),
		"redo_depth": handler.store.RedoDepth(),
	})
}

// Redo re-applies the most recently undone mutation.
func (handler *Handler) Redo(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()

	applied := handler.store.Redo()
	if applied {
		handler.checkpoint()
	}
	return c.JSON(fiber.Map{
		"applied":    applied,
		"undo_depth": handler.store.UndoDepth(),
		"redo_depth": handler.store.RedoDepth(),
	})
}
