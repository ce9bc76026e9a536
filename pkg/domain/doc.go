/*
Package domain contains the core records of the conversion pipeline.

It is kept free of I/O: the types here describe what a conversion decided and produced,
and what a user asked for, while adapters and services decide how to get there.

# Key Entities

  - Settings: the per-message conversion context (prefixes, trigger condition, template).
  - Decision: which branch of the prefix gate a message took.
  - Outcome: the original and converted text of one message.
  - Preference: whether a user wants their messages converted.
  - Hooks: observability callbacks fired by the pipeline.
*/
package domain
