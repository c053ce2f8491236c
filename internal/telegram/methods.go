package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/naseer2426/mod-bot/internal/telegram/model"
)

func call[T any](ctx context.Context, t *TelegramAPI, req Request) (T, error) {
	var out T
	err := t.Do(ctx, req, &out)
	return out, err
}

// Methods returning True on success.

func (t *TelegramAPI) KickChatMember(ctx context.Context, req KickChatMember) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) UnbanChatMember(ctx context.Context, req UnbanChatMember) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) RestrictChatMember(ctx context.Context, req RestrictChatMember) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) PromoteChatMember(ctx context.Context, req PromoteChatMember) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatAdministratorCustomTitle(ctx context.Context, req SetChatAdministratorCustomTitle) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatPermissions(ctx context.Context, req SetChatPermissions) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatPhoto(ctx context.Context, req SetChatPhoto) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) DeleteChatPhoto(ctx context.Context, req DeleteChatPhoto) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatTitle(ctx context.Context, req SetChatTitle) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatDescription(ctx context.Context, req SetChatDescription) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) PinChatMessage(ctx context.Context, req PinChatMessage) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) UnpinChatMessage(ctx context.Context, req UnpinChatMessage) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) UnpinAllChatMessages(ctx context.Context, req UnpinAllChatMessages) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) LeaveChat(ctx context.Context, req LeaveChat) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetChatStickerSet(ctx context.Context, req SetChatStickerSet) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) DeleteChatStickerSet(ctx context.Context, req DeleteChatStickerSet) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) SetWebhook(ctx context.Context, req SetWebhook) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) DeleteWebhook(ctx context.Context, req DeleteWebhook) error {
	return t.Do(ctx, req, nil)
}

func (t *TelegramAPI) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQuery) error {
	return t.Do(ctx, req, nil)
}

// Methods returning objects.

func (t *TelegramAPI) ExportChatInviteLink(ctx context.Context, req ExportChatInviteLink) (string, error) {
	return call[string](ctx, t, req)
}

func (t *TelegramAPI) GetChat(ctx context.Context, req GetChat) (model.Chat, error) {
	return call[model.Chat](ctx, t, req)
}

func (t *TelegramAPI) GetChatAdministrators(ctx context.Context, req GetChatAdministrators) ([]model.ChatMember, error) {
	return call[[]model.ChatMember](ctx, t, req)
}

func (t *TelegramAPI) GetChatMembersCount(ctx context.Context, req GetChatMembersCount) (int, error) {
	return call[int](ctx, t, req)
}

func (t *TelegramAPI) GetChatMember(ctx context.Context, req GetChatMember) (model.ChatMember, error) {
	return call[model.ChatMember](ctx, t, req)
}

func (t *TelegramAPI) CreateChatInviteLink(ctx context.Context, req CreateChatInviteLink) (model.ChatInviteLink, error) {
	return call[model.ChatInviteLink](ctx, t, req)
}

func (t *TelegramAPI) EditChatInviteLink(ctx context.Context, req EditChatInviteLink) (model.ChatInviteLink, error) {
	return call[model.ChatInviteLink](ctx, t, req)
}

func (t *TelegramAPI) RevokeChatInviteLink(ctx context.Context, req RevokeChatInviteLink) (model.ChatInviteLink, error) {
	return call[model.ChatInviteLink](ctx, t, req)
}

func (t *TelegramAPI) SendMessage(ctx context.Context, req SendMessage) (model.Message, error) {
	return call[model.Message](ctx, t, req)
}

func (t *TelegramAPI) GetMe(ctx context.Context) (model.User, error) {
	var me model.User
	err := t.Call(ctx, "getMe", nil, &me)
	return me, err
}

func (t *TelegramAPI) GetFile(ctx context.Context, req GetFile) (model.File, error) {
	return call[model.File](ctx, t, req)
}

func (t *TelegramAPI) GetUserProfilePhotos(ctx context.Context, req GetUserProfilePhotos) (model.UserProfilePhotos, error) {
	return call[model.UserProfilePhotos](ctx, t, req)
}

// FileURL resolves fileID to a download URL through getFile.
func (t *TelegramAPI) FileURL(ctx context.Context, fileID string) (string, error) {
	file, err := t.GetFile(ctx, GetFile{FileID: fileID})
	if err != nil {
		return "", err
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("getFile: no file_path for file_id %s", fileID)
	}
	return fmt.Sprintf("%s/file/bot%s/%s", t.server, t.token, file.FilePath), nil
}

// UpdateBatch is the decoded result of getUpdates.
type UpdateBatch struct {
	Updates []model.Update
	// Failed maps the update_id of every update that could not be decoded to
	// its decode error.
	Failed map[int64]error
	// NextOffset confirms every update in the batch, decoded or not. Zero
	// when the batch is empty.
	NextOffset int64
}

// GetUpdates decodes each update on its own so that one malformed update
// does not hide the rest of the batch.
func (t *TelegramAPI) GetUpdates(ctx context.Context, req GetUpdates) (UpdateBatch, error) {
	raws, err := call[[]json.RawMessage](ctx, t, req)
	if err != nil {
		return UpdateBatch{}, err
	}

	batch := UpdateBatch{Failed: make(map[int64]error)}
	for _, raw := range raws {
		var head struct {
			UpdateID int64 `json:"update_id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return batch, fmt.Errorf("getUpdates: decode update_id: %w", err)
		}
		if head.UpdateID+1 > batch.NextOffset {
			batch.NextOffset = head.UpdateID + 1
		}

		var u model.Update
		if err := json.Unmarshal(raw, &u); err != nil {
			batch.Failed[head.UpdateID] = err
			continue
		}
		batch.Updates = append(batch.Updates, u)
	}
	return batch, nil
}
