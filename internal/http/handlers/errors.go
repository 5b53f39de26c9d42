// Package handlers defines the user-facing error messages returned by the
// API. The wire contract predates this implementation: clients display the
// `erro` field verbatim, so the messages are Portuguese and must not be
// reworded.
package handlers

const (
	// MsgEmptyComment rejects submissions without text or attachment.
	MsgEmptyComment = "Comentário vazio"
	// MsgAttachmentTooLarge rejects attachments above the 10 MB limit.
	MsgAttachmentTooLarge = "Arquivo muito grande (máximo 10MB)"
	// MsgWrongPassword rejects deletions with a bad password.
	MsgWrongPassword = "Senha incorreta"
	// MsgMethodNotAllowed answers unsupported HTTP methods.
	MsgMethodNotAllowed = "Método não permitido"
	// MsgRouteNotFound answers unknown routes.
	MsgRouteNotFound = "Rota não encontrada"
	// MsgInvalidRequest answers unparseable JSON bodies.
	MsgInvalidRequest = "Requisição inválida"

	// MsgLoadFailed / MsgSaveCommentFailed / MsgDeleteCommentFailed /
	// MsgUpdateAlertFailed are the per-operation persistence failure
	// messages.
	MsgLoadFailed          = "Erro ao carregar dados"
	MsgSaveCommentFailed   = "Erro ao salvar comentário"
	MsgDeleteCommentFailed = "Erro ao excluir comentário"
	MsgUpdateAlertFailed   = "Erro ao atualizar alerta"
)
