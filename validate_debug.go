//go:build debug_inblock

package inblock

import "encoding/binary"

const (
	// DebugMargin is the number of bytes of debug data that should be placed at the end of
	// every payload handed out by a heap
	DebugMargin int = 16
	// corruptionDetectionMagicValue is a 4-byte pattern that should be copied into debug data
	// placed after payloads handed out by a heap
	corruptionDetectionMagicValue uint32 = 0x7F84E666
)

// WriteMagicValue writes an easy-to-identify marker across DebugMargin bytes at the provided
// offset into the arena's backing bytes.
// This method no-ops unless the debug_inblock build tag is present.
func WriteMagicValue(data []byte, offset int) {
	marginSize := DebugMargin / 4
	for i := 0; i < marginSize; i++ {
		binary.LittleEndian.PutUint32(data[offset+i*4:], corruptionDetectionMagicValue)
	}
}

// ValidateMagicValue verifies that the easy-to-identify marker written by WriteMagicValue is still present.
// It returns true if the value is still present and false otherwise.
// This method no-ops unless the debug_inblock build tag is present.
func ValidateMagicValue(data []byte, offset int) bool {
	marginSize := DebugMargin / 4
	for i := 0; i < marginSize; i++ {
		if binary.LittleEndian.Uint32(data[offset+i*4:]) != corruptionDetectionMagicValue {
			return false
		}
	}

	return true
}

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_inblock build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckPow2 will verify that the numerical value passed in is a power of two, and panics if it is not.
// This method no-ops unless the debug_inblock build tag is present.
func DebugCheckPow2[T Number](value T, name string) {
	err := CheckPow2[T](value, name)
	if err != nil {
		panic(err)
	}
}
