package protocol

// CRC-32/MPEG-2 parameters. This variant applies the polynomial MSB-first
// with no input or output reflection, which is what the device's hardware
// CRC unit computes; the reflected tables in hash/crc32 cannot reproduce it.
const (
	// CRC32Polynomial is the CRC-32 generator polynomial (0x04C11DB7)
	CRC32Polynomial = 0x04C11DB7

	// CRC32InitialValue is the all-ones initial register value
	CRC32InitialValue = 0xFFFFFFFF

	// CRC32HighBitMask is the high bit mask for the shift register
	CRC32HighBitMask = 0x80000000

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)

// CRC32MPEG2 computes the CRC-32/MPEG-2 checksum of data.
//
// Parameters:
//   - Polynomial: CRC32Polynomial
//   - Initial value: CRC32InitialValue
//   - No reflection, no final XOR
func CRC32MPEG2(data []byte) uint32 {
	crc := uint32(CRC32InitialValue)

	for _, b := range data {
		crc ^= uint32(b) << (32 - BitsPerByte)
		for i := 0; i < BitsPerByte; i++ {
			if crc&CRC32HighBitMask != 0 {
				crc = (crc << 1) ^ CRC32Polynomial
			} else {
				crc = crc << 1
			}
		}
	}

	return crc
}
