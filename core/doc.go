/*
Package core defines the domain objects of the benchstore experimentation
platform: experiments, trials, arms, search spaces, metrics, observation data,
and generation strategies.

These types are deliberately plain. They carry stable field sets and no
serialization logic of their own; the jsonstore package registers an encoder
and decoder for each of them in its static manifest. Optimization models are
opaque: a GenerationStep holds a type reference to a Model implementation and
instantiates it dynamically when arms need to be generated.

Trials do not back-reference their experiment. The linkage is transient state
owned by the caller and is reconstructed (or left nil) after decoding.
*/
package core
