package state

// Store is the whole client view model.
type Store struct {
	Router Router
	Chat   ChatSession
	Roster RosterState
	Modal  ModalSession
}

func New(userID string) Store {
	return Store{
		Router: NewRouter(DefaultRegistry(), ViewDashboard),
		Chat:   NewChatSession(userID),
	}
}

// Prefill drafts a message for member and moves to the chat view. It never sends.
func (s *Store) Prefill(member string) {
	s.Chat.Input = PrefillText(member)
	s.Router.Switch(ViewChat)
}
