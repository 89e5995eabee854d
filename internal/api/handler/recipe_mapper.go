package handler

import (
	"github.com/openkitchen/recipe-catalog/internal/core/domain"
	"github.com/openkitchen/recipe-catalog/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createRecipeRequest, actor *domain.User) ports.CreateRecipeInput {
	return ports.CreateRecipeInput{
		Actor:         actor,
		Name:          req.Name,
		NameFR:        req.NameFR,
		Steps:         req.Steps,
		StepsFR:       req.StepsFR,
		Ingredients:   req.Ingredients,
		IngredientsFR: req.IngredientsFR,
		Timers:        req.Timers,
		Without:       req.Without,
	}
}

func toUpdateInput(req updateRecipeRequest, actor *domain.User, id int) ports.UpdateRecipeInput {
	return ports.UpdateRecipeInput{
		Actor:         actor,
		ID:            id,
		Name:          req.Name,
		NameFR:        req.NameFR,
		Steps:         req.Steps,
		StepsFR:       req.StepsFR,
		Ingredients:   req.Ingredients,
		IngredientsFR: req.IngredientsFR,
		Timers:        req.Timers,
		Without:       req.Without,
	}
}

func toTranslatePatch(req translateRequest) domain.TranslationPatch {
	return domain.TranslationPatch{
		NameFR:        req.NameFR,
		StepsFR:       req.StepsFR,
		IngredientsFR: req.IngredientsFR,
	}
}
