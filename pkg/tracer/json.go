package tracer

import (
	"encoding/json"
	"io"
)

// jsonStep mirrors Step with JSON field names and the event rendered as
// text rather than an int, so a named field survives schema changes
// better than a positional one would.
type jsonStep struct {
	PCBefore uint16    `json:"pc_before"`
	Opcode   uint8     `json:"opcode"`
	I        uint8     `json:"i"`
	N        uint8     `json:"n"`
	D        uint8     `json:"d"`
	DF       uint8     `json:"df"`
	P        uint8     `json:"p"`
	X        uint8     `json:"x"`
	T        uint8     `json:"t"`
	IE       uint8     `json:"ie"`
	Q        uint8     `json:"q"`
	R        [16]uint16 `json:"r"`
	MRX      uint8     `json:"m_rx"`
	Event    string    `json:"event,omitempty"`
}

// JSONSink writes one JSON object per Step to Writer, newline-delimited
// (JSON Lines), for feeding traces into external tooling.
type JSONSink struct {
	Writer io.Writer
	enc    *json.Encoder
}

// Trace implements Sink.
func (s *JSONSink) Trace(st Step) {
	if s.enc == nil {
		s.enc = json.NewEncoder(s.Writer)
	}
	event := ""
	if st.Event != NoEvent {
		event = st.Event.String()
	}
	s.enc.Encode(jsonStep{
		PCBefore: st.PCBefore,
		Opcode:   st.Opcode,
		I:        st.I,
		N:        st.N,
		D:        st.D,
		DF:       st.DF,
		P:        st.P,
		X:        st.X,
		T:        st.T,
		IE:       st.IE,
		Q:        st.Q,
		R:        st.R,
		MRX:      st.MRX,
		Event:    event,
	})
}
