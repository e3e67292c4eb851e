// Package rewriter turns conversational search queries into short,
// caption-like phrases before they are embedded.
//
// Free-form chat input ("hey, can you show me some pictures of dogs on a
// beach?") embeds poorly against image captions. The rewriter asks an
// OpenAI-compatible chat model to strip the conversational framing and keep
// only the visual content. When no model is configured, Passthrough returns
// the query unchanged so search keeps working without the dependency.
package rewriter
