package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"pawledger/internal/app/action"
	"pawledger/internal/app/ports"
	"pawledger/internal/app/progress"
	"pawledger/internal/app/quest"
	"pawledger/internal/app/report"
	"pawledger/internal/app/slots"
	"pawledger/internal/app/status"
	"pawledger/internal/app/store"
	"pawledger/internal/app/tasks"
	"pawledger/internal/app/wallet"
	"pawledger/internal/domain/pet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	SlotsUC    slots.UseCase
	ActionUC   action.UseCase
	StoreUC    store.UseCase
	ProgressUC progress.UseCase
	QuestUC    quest.UseCase
	WalletUC   wallet.UseCase
	TasksUC    tasks.UseCase
	ReportUC   report.UseCase
	StatusUC   status.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/slots", h.listSlots)
	api.GET("/slots/:slot", h.loadSlot)
	api.PUT("/slots/:slot", h.saveSlot)
	api.DELETE("/slots/:slot", h.deleteSlot)
	api.POST("/slots/:slot/pet", h.createPet)
	api.POST("/slots/:slot/actions", h.performAction)
	api.POST("/slots/:slot/store/buy", h.buyItem)
	api.POST("/slots/:slot/xp", h.giveXP)
	api.POST("/slots/:slot/coins", h.giveCoins)
	api.POST("/slots/:slot/evolution/check", h.checkEvolution)
	api.POST("/slots/:slot/evolution/ack", h.acknowledgeEvolution)
	api.GET("/slots/:slot/quests", h.getQuests)
	api.POST("/slots/:slot/quests/claim", h.claimQuest)
	api.POST("/slots/:slot/allowance", h.claimAllowance)
	api.POST("/slots/:slot/checkin", h.checkIn)
	api.POST("/slots/:slot/tasks/complete", h.completeTask)
	api.GET("/slots/:slot/status", h.observe)
	api.GET("/slots/:slot/export/expenses.csv", h.exportExpenses)
	api.GET("/slots/:slot/export/income.csv", h.exportIncome)

	s.GET("/ops/kpi", h.kpi)
}

type createPetRequest struct {
	Name            string `json:"name"`
	Species         string `json:"species"`
	Demo            bool   `json:"demo"`
	DemoSeedVersion int    `json:"demo_seed_version"`
}

// saveSlotRequest mirrors slots.SaveParams: record slices merge by id,
// pointer fields absent from the JSON stay nil and keep the persisted
// value, present ones overwrite.
type saveSlotRequest struct {
	Pet       *pet.Pet            `json:"pet"`
	Expenses  []pet.ExpenseRecord `json:"expenses"`
	Income    []pet.IncomeRecord  `json:"income"`
	Quests    *pet.QuestSet       `json:"quests"`
	Badges    []string            `json:"badges"`
	TaskState []pet.TaskState     `json:"task_state"`

	Demo               *bool               `json:"demo"`
	DemoSeedVersion    *int                `json:"demo_seed_version"`
	LastAllowanceClaim *time.Time          `json:"last_allowance_claim"`
	LastCheckIn        *string             `json:"last_check_in"`
	GuideChecklist     *pet.GuideChecklist `json:"guide_checklist"`
}

func (r saveSlotRequest) toParams(slot int) slots.SaveParams {
	return slots.SaveParams{
		Slot:      slot,
		Pet:       r.Pet,
		Expenses:  r.Expenses,
		Income:    r.Income,
		Quests:    r.Quests,
		Badges:    r.Badges,
		TaskState: r.TaskState,

		Demo:               r.Demo,
		DemoSeedVersion:    r.DemoSeedVersion,
		LastAllowanceClaim: r.LastAllowanceClaim,
		LastCheckIn:        r.LastCheckIn,
		GuideChecklist:     r.GuideChecklist,
	}
}

type actionRequest struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref,omitempty"`
}

type buyRequest struct {
	ItemID string `json:"item_id"`
}

type giveXPRequest struct {
	Amount int `json:"amount"`
}

type giveCoinsRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
	Label  string `json:"label"`
}

type ackRequest struct {
	EventID string `json:"event_id"`
}

type claimQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type completeTaskRequest struct {
	TaskID string `json:"task_id"`
}

func (h Handler) listSlots(c context.Context, ctx *app.RequestContext) {
	metas, err := h.SlotsUC.ListSlots(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"slots": metas})
}

func (h Handler) loadSlot(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	state, err := h.SlotsUC.LoadAll(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, state)
}

func (h Handler) saveSlot(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body saveSlotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.SlotsUC.SaveAll(c, body.toParams(slot)); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) deleteSlot(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	if err := h.SlotsUC.DeleteSlot(c, slot); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) createPet(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body createPetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	state, err := h.SlotsUC.CreatePet(c, slots.CreatePetRequest{
		Slot:            slot,
		Name:            body.Name,
		Species:         pet.Species(body.Species),
		Demo:            body.Demo,
		DemoSeedVersion: body.DemoSeedVersion,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, state)
}

func (h Handler) performAction(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ActionUC.Execute(c, action.Request{
		Slot: slot,
		Kind: pet.ActionKind(body.Kind),
		Ref:  body.Ref,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) buyItem(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body buyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StoreUC.Execute(c, store.Request{Slot: slot, ItemID: body.ItemID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) giveXP(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body giveXPRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ProgressUC.GiveXP(c, progress.GiveXPRequest{Slot: slot, Amount: body.Amount})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) giveCoins(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body giveCoinsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.WalletUC.GiveCoins(c, wallet.GiveCoinsRequest{
		Slot:   slot,
		Amount: body.Amount,
		Source: pet.IncomeSource(body.Source),
		Label:  body.Label,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) checkEvolution(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	resp, err := h.ProgressUC.CheckEvolution(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) acknowledgeEvolution(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body ackRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p, err := h.ProgressUC.AcknowledgeEvolution(c, progress.AckRequest{Slot: slot, EventID: body.EventID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pet": p})
}

func (h Handler) getQuests(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	set, err := h.QuestUC.Get(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, set)
}

func (h Handler) claimQuest(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body claimQuestRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.QuestUC.Claim(c, quest.ClaimRequest{Slot: slot, QuestID: body.QuestID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) claimAllowance(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	resp, err := h.WalletUC.ClaimAllowance(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) checkIn(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	resp, err := h.WalletUC.CheckIn(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) completeTask(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	var body completeTaskRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TasksUC.Complete(c, tasks.CompleteRequest{Slot: slot, TaskID: body.TaskID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	resp, err := h.StatusUC.Observe(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) exportExpenses(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	b, err := h.ReportUC.ExportExpensesCSV(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", b)
}

func (h Handler) exportIncome(c context.Context, ctx *app.RequestContext) {
	slot, ok := slotParam(ctx)
	if !ok {
		return
	}
	b, err := h.ReportUC.ExportIncomeCSV(c, slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", b)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func slotParam(ctx *app.RequestContext) (int, bool) {
	slot, err := strconv.Atoi(ctx.Param("slot"))
	if err != nil || slot < 1 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_slot", "invalid slot number")
		return 0, false
	}
	return slot, true
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, tasks.ErrCooldownActive):
		details := map[string]any{}
		var cooldownErr *tasks.CooldownActiveError
		if errors.As(err, &cooldownErr) && cooldownErr != nil {
			details["task_id"] = cooldownErr.TaskID
			details["remaining_seconds"] = cooldownErr.RemainingSeconds
		}
		writeErrorDetails(ctx, consts.StatusConflict, "task_cooldown_active", err.Error(), details)
	case errors.Is(err, slots.ErrPetExists):
		writeErrorBody(ctx, consts.StatusConflict, "pet_exists", err.Error())
	case errors.Is(err, quest.ErrNotClaimable):
		writeErrorBody(ctx, consts.StatusConflict, "quest_not_claimable", err.Error())
	case errors.Is(err, wallet.ErrAllowanceNotDue):
		writeErrorBody(ctx, consts.StatusConflict, "allowance_not_due", err.Error())
	case errors.Is(err, wallet.ErrAlreadyCheckedIn):
		writeErrorBody(ctx, consts.StatusConflict, "already_checked_in", err.Error())
	case errors.Is(err, action.ErrNoPet),
		errors.Is(err, store.ErrNoPet),
		errors.Is(err, progress.ErrNoPet),
		errors.Is(err, quest.ErrNoPet),
		errors.Is(err, wallet.ErrNoPet),
		errors.Is(err, tasks.ErrNoPet),
		errors.Is(err, status.ErrNoPet):
		writeErrorBody(ctx, consts.StatusNotFound, "no_pet", err.Error())
	case errors.Is(err, tasks.ErrUnknownTask):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_task", err.Error())
	case errors.Is(err, slots.ErrInvalidSlot),
		errors.Is(err, slots.ErrInvalidRequest),
		errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidRequest),
		errors.Is(err, progress.ErrInvalidRequest),
		errors.Is(err, quest.ErrInvalidRequest),
		errors.Is(err, wallet.ErrInvalidRequest),
		errors.Is(err, wallet.ErrUnknownIncomeLabel),
		errors.Is(err, tasks.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, report.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
