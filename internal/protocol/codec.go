package protocol

import "encoding/json"

// Marshal encodes a single frame for message-oriented transports
func Marshal(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

// Unmarshal decodes a single frame
func Unmarshal(data []byte) (Frame, error) {
	var f Frame
	err := json.Unmarshal(data, &f)
	return f, err
}
