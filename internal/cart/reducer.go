package cart

// Action is one cart command. The variants form a closed set folded
// through Apply; none of them can fail, and none of them touch the
// mirror — persistence is the Store's job.
type Action interface{ isAction() }

type AddItem struct{ Item Item }

type RemoveItem struct{ ID int }

type UpdateQuantity struct {
	ID       int
	Quantity int
}

type ClearCart struct{}

type ToggleCart struct{}

type CloseCart struct{}

type LoadCart struct{ State State }

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (ToggleCart) isAction()     {}
func (CloseCart) isAction()      {}
func (LoadCart) isAction()       {}

// Apply is the pure transition function. The returned state shares no
// item slice with the input.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case LoadCart:
		return a.State

	case AddItem:
		items := copyItems(s.Items)
		for i, it := range items {
			if it.ID == a.Item.ID {
				items[i].Quantity += a.Item.Quantity
				return State{Items: items, IsOpen: s.IsOpen}
			}
		}
		return State{Items: append(items, a.Item), IsOpen: s.IsOpen}

	case RemoveItem:
		return State{Items: without(s.Items, a.ID), IsOpen: s.IsOpen}

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return State{Items: without(s.Items, a.ID), IsOpen: s.IsOpen}
		}
		items := copyItems(s.Items)
		for i, it := range items {
			if it.ID == a.ID {
				items[i].Quantity = a.Quantity
			}
		}
		return State{Items: items, IsOpen: s.IsOpen}

	case ClearCart:
		return State{Items: []Item{}, IsOpen: s.IsOpen}

	case ToggleCart:
		return State{Items: copyItems(s.Items), IsOpen: !s.IsOpen}

	case CloseCart:
		return State{Items: copyItems(s.Items), IsOpen: false}

	default:
		return s
	}
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func without(items []Item, id int) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
