package icon

import (
	"bytes"
	"encoding/binary"
	"image/png"
)

// PNG returns the icon encoded as PNG.
func PNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Draw(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToICO wraps a size x size PNG in a single-image ICO container.
// Windows LoadImage(IMAGE_ICON) requires ICO; since Vista an ICO entry
// may hold PNG data directly.
func ToICO(pngData []byte, size int) []byte {
	buf := new(bytes.Buffer)
	// ICONDIR: reserved, type 1 (icon), 1 image
	binary.Write(buf, binary.LittleEndian, [3]uint16{0, 1, 1})

	// ICONDIRENTRY; width/height 0 mean 256
	dim := entryDim(size)
	buf.Write([]byte{dim, dim, 0, 0})
	binary.Write(buf, binary.LittleEndian, uint16(1))            // planes
	binary.Write(buf, binary.LittleEndian, uint16(32))           // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(len(pngData))) // size
	binary.Write(buf, binary.LittleEndian, uint32(6+16))         // offset

	buf.Write(pngData)
	return buf.Bytes()
}

// entryDim encodes an icon dimension for ICONDIRENTRY, where one byte
// holds 1-255 and 0 stands for 256 or more.
func entryDim(size int) byte {
	if size <= 0 || size >= 256 {
		return 0
	}
	return byte(size)
}
