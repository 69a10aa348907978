/*
Package jsonstore implements the registry-driven serialization layer of the
platform: it round-trips the polymorphic experiment object graph to and from
a tree-shaped JSON document format, preserving type identity.

Every encoded document carries a "__type" discriminant. Encoding resolves the
most specific applicable encoder: an exact entry for the object's concrete
type, else the first matching entry in the ordered ancestor table. Subtypes of
a common base may share one encoder function yet still stamp their own
discriminant, so decoding reconstructs the original concrete type. Fields that
hold a type reference rather than an instance (the model class a generation
step instantiates) encode under a parametrized "Type[Base]" discriminant and
decode into type handles.

The Registry is an explicit value, built once by the CoreRegistry manifest and
passed by reference to encode and decode calls. It is never mutated after
construction, so lookups are safe for concurrent readers without locking.

Usage:

	reg := jsonstore.CoreRegistry()

	doc, err := reg.Encode(experiment)
	payload, err := json.Marshal(doc)

	var restored jsonstore.Document
	err = json.Unmarshal(payload, &restored)
	obj, err := reg.Decode(&restored)
	experiment = obj.(*core.Experiment)

Decoding either fully succeeds or fails with a typed error (see the errors
package); no partially constructed object ever escapes.
*/
package jsonstore
