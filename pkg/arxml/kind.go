// SPDX-License-Identifier: MPL-2.0

package arxml

import "encoding/json"

// ElementKind is the closed set of AUTOSAR leaf artifact kinds that receive
// special treatment during merging and inventory tracking. Tags outside the
// set classify as KindGeneric and are merged purely structurally.
type ElementKind int

const (
	// KindGeneric is any container or unrecognized element tag.
	KindGeneric ElementKind = iota
	// KindISignal is an I-SIGNAL leaf element.
	KindISignal
	// KindISignalGroup is an I-SIGNAL-GROUP leaf element.
	KindISignalGroup
	// KindSenderReceiverInterface is a SENDER-RECEIVER-INTERFACE element.
	KindSenderReceiverInterface
	// KindClientServerInterface is a CLIENT-SERVER-INTERFACE element.
	KindClientServerInterface
	// KindEcuInstance is an ECU-INSTANCE element.
	KindEcuInstance
	// KindPrimitiveType is a PRIMITIVE-TYPE data type element.
	KindPrimitiveType
	// KindArrayType is an ARRAY-TYPE data type element.
	KindArrayType
	// KindRecordType is a RECORD-TYPE data type element.
	KindRecordType
	// KindEnumerationType is an ENUMERATION-TYPE data type element.
	KindEnumerationType
)

var kindTags = map[string]ElementKind{
	"I-SIGNAL":                  KindISignal,
	"I-SIGNAL-GROUP":            KindISignalGroup,
	"SENDER-RECEIVER-INTERFACE": KindSenderReceiverInterface,
	"CLIENT-SERVER-INTERFACE":   KindClientServerInterface,
	"ECU-INSTANCE":              KindEcuInstance,
	"PRIMITIVE-TYPE":            KindPrimitiveType,
	"ARRAY-TYPE":                KindArrayType,
	"RECORD-TYPE":               KindRecordType,
	"ENUMERATION-TYPE":          KindEnumerationType,
}

var kindNames = func() map[ElementKind]string {
	names := make(map[ElementKind]string, len(kindTags))
	for tag, kind := range kindTags {
		names[kind] = tag
	}
	return names
}()

// KindForTag maps a local element tag to its ElementKind.
func KindForTag(tag string) ElementKind {
	if kind, ok := kindTags[tag]; ok {
		return kind
	}
	return KindGeneric
}

// String returns the AUTOSAR tag for the kind, or "GENERIC" for KindGeneric.
func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "GENERIC"
}

// MarshalJSON encodes the kind as its AUTOSAR tag.
func (k ElementKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// IsInterface reports whether the kind is one of the port interface kinds.
func (k ElementKind) IsInterface() bool {
	return k == KindSenderReceiverInterface || k == KindClientServerInterface
}

// IsSignal reports whether the kind is a signal or signal group.
func (k ElementKind) IsSignal() bool {
	return k == KindISignal || k == KindISignalGroup
}
