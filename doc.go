/*
Package benchstore is the storage layer of a Bayesian-optimization
experimentation platform. It persists the platform's rich object graph
(experiments containing trials containing arms, search spaces, metrics, and
generation strategies referencing model classes) to a portable JSON document
format, and reconstructs it with type and identity fidelity preserved.

The heart of the library is the registry-driven codec in the jsonstore
package: every persistable type has an encoder and decoder entry in a static
manifest, documents carry a "__type" discriminant, and subtypes sharing a
base encoder still round-trip to their own concrete type. The benchmark
package supplies the metric adapter family that converts raw trial outcome
data into standardized observation records, including noiseless ground-truth
metric variants.

Basic usage:

	store := benchstore.NewStore(jsonstore.CoreRegistry(), backend)

	err := store.SaveExperiment(ctx, experiment)
	restored, err := store.LoadExperiment(ctx, experiment.Name)

Backends implement the datastore.DocumentStore interface; DynamoDB, Redis,
and an in-memory mock are provided. See the config type for selecting one
from a YAML file.
*/
package benchstore
