package mongo

import "go.mongodb.org/mongo-driver/bson/primitive"

// objectID parses a hex document id. ok is false when the value can never
// match a stored _id; callers map that to their not-found sentinel.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// objectIDs parses a batch of hex ids, skipping malformed values. Malformed
// ids cannot match any document, so dropping them preserves filter semantics.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}
