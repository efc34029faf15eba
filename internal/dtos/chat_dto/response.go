package chat_dto

import "github.com/Abedalrahmansd/SSociety-API/internal/entity"

type GetMessagesResponse struct {
	Messages []*entity.Message `json:"messages"`
}
