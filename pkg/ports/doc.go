/*
Package ports defines the driven ports (interfaces) of the conversion pipeline.

These interfaces decouple the core logic from external implementations, allowing
the pipeline to work with various kanji services and preference backends.

# Key Interfaces

  - KanjiConverter: turns hiragana into kanji (e.g., the Google IME adapter).
  - PreferenceStore: persists per-user preferences (e.g., Memory or Redis).
*/
package ports
