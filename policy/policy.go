package policy

import "journal-cms/models"

// Action is something an actor can try to do to an article.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Can decides whether actor may perform action on article. It is the single
// place authorization rules live; handlers and services must not re-derive
// them from roles. A nil actor is an anonymous visitor, a nil article is
// valid only for ActionCreate.
func Can(actor *models.User, article *models.Article, action Action) bool {
	switch action {
	case ActionCreate:
		return actor != nil

	case ActionView:
		if article == nil {
			return false
		}
		if article.Status == models.StatusApproved {
			return true
		}
		return isOwner(actor, article) || actor.IsModerator()

	case ActionEdit, ActionDelete:
		if article == nil {
			return false
		}
		return isOwner(actor, article) || actor.IsAdmin()

	case ActionApprove, ActionReject:
		if article == nil || article.Status != models.StatusPending {
			return false
		}
		return actor.IsModerator()
	}

	return false
}

// CanModerate reports whether the actor holds a moderation role at all,
// independent of any article. Callers use it to distinguish "wrong role"
// from "article already processed".
func CanModerate(actor *models.User) bool {
	return actor.IsModerator()
}

func isOwner(actor *models.User, article *models.Article) bool {
	return actor != nil && actor.ID == article.AuthorID
}
