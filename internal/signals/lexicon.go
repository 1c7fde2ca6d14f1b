package signals

// Lexicons for journal analysis. Matching is case-insensitive substring
// search over the entry text, so inflected forms ("worthlessness") still hit.
//
// Sentiment and negativity use separate negative lists: negativeWords feeds
// the mood balance against positiveWords, while negativityWords carries the
// safety-critical vocabulary scored by the negative_language feature.

var negativeWords = []string{
	"sad", "angry", "depressed", "anxious", "worried", "scared", "hurt",
	"pain", "hate", "terrible", "awful", "horrible", "miserable", "lonely",
	"hopeless", "worthless", "guilty", "ashamed", "fear", "panic", "stress",
	"tension", "frustrated", "annoyed", "irritated", "upset", "disappointed",
	"heartbroken", "devastated", "crushed", "defeated",
}

var negativityWords = []string{
	"hate", "kill", "die", "suicide", "end", "stop", "can't", "won't",
	"never", "hopeless", "worthless", "useless", "pointless", "meaningless",
	"empty", "void", "dark", "black", "death", "dead", "burden", "tired",
	"exhausted", "drained", "numb", "numbness", "pain", "suffering", "agony",
	"torment", "hell", "nightmare",
}

var positiveWords = []string{
	"happy", "joy", "excited", "good", "great", "wonderful", "peaceful",
	"calm", "love", "amazing", "fantastic", "beautiful", "blessed",
	"grateful", "thankful", "content", "satisfied", "fulfilled",
	"accomplished", "proud", "confident", "optimistic", "hopeful",
	"inspired", "motivated", "energetic", "vibrant", "alive", "thriving",
}

var concerningPhrases = []string{
	"want to die", "end it all", "give up", "no point", "better off dead",
	"kill myself", "end my life", "take my life", "no reason to live",
	"life is meaningless", "i hate myself", "i'm worthless", "i'm useless",
	"i can't take it anymore", "i can't go on", "i'm done", "i give up",
	"i quit", "i surrender", "i'm broken", "i'm damaged", "i'm ruined",
	"i'm destroyed",
}
