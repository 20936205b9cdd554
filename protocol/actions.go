package protocol

import (
	"encoding/json"
	"fmt"
)

// PointerType is the input device an ActionSequence of type "pointer"
// simulates.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerPen   PointerType = "pen"
	PointerTouch PointerType = "touch"
)

// PointerActionParameters carries the extra fields an ActionSequence of
// type "pointer" adds alongside id/type/actions.
type PointerActionParameters struct {
	PointerType PointerType `json:"pointerType"`
}

// ActionSequenceKind discriminates an ActionSequence's "type" field.
type ActionSequenceKind string

const (
	ActionSequenceNone    ActionSequenceKind = "none"
	ActionSequenceKey     ActionSequenceKind = "key"
	ActionSequencePointer ActionSequenceKind = "pointer"
)

// ActionSequence is one input source's time-ordered list of actions. Its
// JSON shape is a "type"-tagged union: {"id","type","actions"}, with
// "pointer" sequences additionally carrying PointerActionParameters'
// fields inline. Hand-written because encoding/json cannot flatten a
// type-dependent extra field into a tagged object via struct tags alone.
type ActionSequence struct {
	ID          *string
	Kind        ActionSequenceKind
	Pointer     PointerActionParameters // meaningful when Kind == ActionSequencePointer
	NullActions []NullActionItem        // meaningful when Kind == ActionSequenceNone
	KeyActions  []KeyActionItem         // meaningful when Kind == ActionSequenceKey
	PointerActions []PointerActionItem  // meaningful when Kind == ActionSequencePointer
}

func (s ActionSequence) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id":   idOrNull(s.ID),
		"type": string(s.Kind),
	}
	switch s.Kind {
	case ActionSequenceNone:
		m["actions"] = s.NullActions
	case ActionSequenceKey:
		m["actions"] = s.KeyActions
	case ActionSequencePointer:
		m["pointerType"] = s.Pointer.PointerType
		m["actions"] = s.PointerActions
	default:
		return nil, New(InvalidArgument, "unknown action sequence type "+string(s.Kind))
	}
	return json.Marshal(m)
}

func idOrNull(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}

func (s *ActionSequence) UnmarshalJSON(data []byte) error {
	var head struct {
		ID          *string         `json:"id"`
		Type        string          `json:"type"`
		PointerType PointerType     `json:"pointerType"`
		Actions     json.RawMessage `json:"actions"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return New(InvalidArgument, "invalid action sequence: "+err.Error())
	}

	s.ID = head.ID
	s.Kind = ActionSequenceKind(head.Type)

	switch s.Kind {
	case ActionSequenceNone:
		if head.Actions != nil {
			if err := json.Unmarshal(head.Actions, &s.NullActions); err != nil {
				return New(InvalidArgument, "invalid none action sequence: "+err.Error())
			}
		}
	case ActionSequenceKey:
		if head.Actions != nil {
			if err := json.Unmarshal(head.Actions, &s.KeyActions); err != nil {
				return New(InvalidArgument, "invalid key action sequence: "+err.Error())
			}
		}
	case ActionSequencePointer:
		if head.PointerType == "" {
			head.PointerType = PointerMouse
		}
		s.Pointer = PointerActionParameters{PointerType: head.PointerType}
		if head.Actions != nil {
			if err := json.Unmarshal(head.Actions, &s.PointerActions); err != nil {
				return New(InvalidArgument, "invalid pointer action sequence: "+err.Error())
			}
		}
	default:
		return New(InvalidArgument, "unknown action sequence type "+head.Type)
	}
	return nil
}

// NullActionItem is an action inside a "none"-type sequence: currently
// only a pause.
type NullActionItem struct {
	Duration uint64
}

func (a NullActionItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"type": "pause", "duration": a.Duration})
}

func (a *NullActionItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type     string `json:"type"`
		Duration uint64 `json:"duration"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return New(InvalidArgument, "invalid null action item: "+err.Error())
	}
	if head.Type != "pause" {
		return New(InvalidArgument, "unknown null action type "+head.Type)
	}
	a.Duration = head.Duration
	return nil
}

// KeyActionKind discriminates an action inside a "key"-type sequence.
type KeyActionKind string

const (
	KeyActionPause  KeyActionKind = "pause"
	KeyActionKeyUp  KeyActionKind = "keyUp"
	KeyActionKeyDown KeyActionKind = "keyDown"
)

// KeyActionItem is one action inside a "key"-type sequence.
type KeyActionItem struct {
	Kind     KeyActionKind
	Duration uint64 // meaningful when Kind == KeyActionPause
	Value    rune   // meaningful when Kind == KeyActionKeyUp/KeyActionKeyDown
}

func (a KeyActionItem) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KeyActionPause:
		return json.Marshal(map[string]any{"type": "pause", "duration": a.Duration})
	case KeyActionKeyUp, KeyActionKeyDown:
		return json.Marshal(map[string]any{"type": string(a.Kind), "value": string(a.Value)})
	default:
		return nil, New(InvalidArgument, "unknown key action type "+string(a.Kind))
	}
}

func (a *KeyActionItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type     string `json:"type"`
		Duration uint64 `json:"duration"`
		Value    string `json:"value"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return New(InvalidArgument, "invalid key action item: "+err.Error())
	}
	a.Kind = KeyActionKind(head.Type)
	switch a.Kind {
	case KeyActionPause:
		a.Duration = head.Duration
	case KeyActionKeyUp, KeyActionKeyDown:
		runes := []rune(head.Value)
		if len(runes) != 1 {
			return New(InvalidArgument, "key action value must be a single Unicode scalar")
		}
		a.Value = runes[0]
	default:
		return New(InvalidArgument, "unknown key action type "+head.Type)
	}
	return nil
}

// PointerActionKind discriminates an action inside a "pointer"-type
// sequence.
type PointerActionKind string

const (
	PointerActionPause        PointerActionKind = "pause"
	PointerActionPointerUp    PointerActionKind = "pointerUp"
	PointerActionPointerDown  PointerActionKind = "pointerDown"
	PointerActionPointerMove  PointerActionKind = "pointerMove"
	PointerActionPointerCancel PointerActionKind = "pointerCancel"
)

// PointerActionItem is one action inside a "pointer"-type sequence.
type PointerActionItem struct {
	Kind     PointerActionKind
	Duration uint64      // pause
	Button   uint64      // pointerUp / pointerDown
	Move     PointerMove // pointerMove
}

// PointerMove carries pointerMove's optional fields. Each is nullable per
// the general Option<T> rule: present fields serialize as the raw value,
// absent fields serialize as JSON null (not omitted).
type PointerMove struct {
	Duration *uint64
	Element  *WebElement
	X        *int64
	Y        *int64
}

func (a PointerActionItem) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case PointerActionPause:
		return json.Marshal(map[string]any{"type": "pause", "duration": a.Duration})
	case PointerActionPointerUp, PointerActionPointerDown:
		return json.Marshal(map[string]any{"type": string(a.Kind), "button": a.Button})
	case PointerActionPointerMove:
		var elem any
		if a.Move.Element != nil {
			elem = *a.Move.Element
		}
		return json.Marshal(map[string]any{
			"type":     "pointerMove",
			"duration": derefUint64(a.Move.Duration),
			"element":  elem,
			"x":        derefInt64(a.Move.X),
			"y":        derefInt64(a.Move.Y),
		})
	case PointerActionPointerCancel:
		return json.Marshal(map[string]any{"type": "pointerCancel"})
	default:
		return nil, New(InvalidArgument, "unknown pointer action type "+string(a.Kind))
	}
}

func derefUint64(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func (a *PointerActionItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type     string          `json:"type"`
		Duration *uint64         `json:"duration"`
		Button   uint64          `json:"button"`
		Element  json.RawMessage `json:"element"`
		X        *int64          `json:"x"`
		Y        *int64          `json:"y"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return New(InvalidArgument, "invalid pointer action item: "+err.Error())
	}
	a.Kind = PointerActionKind(head.Type)
	switch a.Kind {
	case PointerActionPause:
		if head.Duration == nil {
			return New(InvalidArgument, "pause action missing duration")
		}
		a.Duration = *head.Duration
	case PointerActionPointerUp, PointerActionPointerDown:
		a.Button = head.Button
	case PointerActionPointerMove:
		a.Move = PointerMove{Duration: head.Duration, X: head.X, Y: head.Y}
		if len(head.Element) > 0 && string(head.Element) != "null" {
			var elem WebElement
			if err := json.Unmarshal(head.Element, &elem); err != nil {
				return New(InvalidArgument, "invalid pointerMove element: "+err.Error())
			}
			a.Move.Element = &elem
		}
	case PointerActionPointerCancel:
		// no fields
	default:
		return New(InvalidArgument, fmt.Sprintf("unknown pointer action type %q", head.Type))
	}
	return nil
}
