// Package transport runs the framed TCP surface of the game server.
// Each connection carries length-prefixed JSON frames: a 4-byte
// big-endian payload length followed by that many bytes of UTF-8 JSON.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize caps a single frame's payload. A peer announcing a
// larger frame is misbehaving and gets disconnected.
const MaxFrameSize = 1024 * 1024

// ReadFrame reads one length-prefixed frame from r. io.EOF on the
// length prefix means the peer closed the connection cleanly.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	frameLen := binary.BigEndian.Uint32(lenBuf[:])
	if frameLen > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit %d", frameLen, MaxFrameSize)
	}

	payload := make([]byte, frameLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes one length-prefixed frame to w
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds limit %d", len(payload), MaxFrameSize)
	}

	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(payload)))
	copy(buf[4:], payload)

	_, err := w.Write(buf)
	return err
}
