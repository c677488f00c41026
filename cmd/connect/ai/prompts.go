package ai

var promptScore = `User:
Use the following pieces of information to answer the user's question.
If you don't know the answer, say that you don't know.

Provide the answer in a JSON document using the following document.

{
    "scores": [number, number, number, number, number, number, number],
    "reason": string
}

The user is playing the board game Connect 4 and they will ask you a question
so you can help them make their next move. Use the rules for Connect 4 to help
answer the question.

The board has 7 columns numbered 0 to 6 from left to right. The top row is
printed first. The user's discs are marked 'M', the other player's discs are
marked 'T' and empty cells are marked '.'.

Give every column a score between 0 and 1 where a higher score means a better
column for the user to drop a disc into. A full column should get a score of 0.

Here is the current state of the Game Board.

%s
Question:
How good is each column for the user's next move?
`

var promptScoreAgain = `
%s

Assistant:
%s

User:
You didn't provide a JSON document with exactly 7 scores. Please try again.
`
