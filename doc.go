/*
CYCLIC encodes data with a binary cyclic block code, simulates a noisy
channel and corrects single-bit errors by syndrome table lookup.

Polynomials are written as strings of bits, highest power first:

	1101 = x^3 + x^2 + 1

The generator polynomial of degree m defines the code. Codewords are
n = 2^m - 1 bits long unless a shorter length is given, and carry
k = n - m message bits followed by m parity bits. Bit positions are counted
from 0 at the left.

Commands:

	cyclic table

Prints the syndrome of a single-bit error at each position.

	cyclic encode 1011 0001

Encodes each k bit block. The codeword of 1011 under 1101 is 1011100.

	cyclic decode 1011100 1001100

Decodes each n bit block. The second block has an error at position 2,
which is corrected.

	cyclic inject 1011100 0 4

Flips the named positions. Positions outside the codeword are ignored.

	cyclic send --policy=random --seed=1 "Hello"

Sends text through the whole chain: 8 bits per byte plus a CRC-16, split
into k bit blocks with the last zero padded, encoded, corrupted according
to the error policy, decoded and converted back to text.

Global Flags:

	--generator=1101

Generator polynomial.

	--length=0

Code length, 0 derives 2^m - 1. A smaller length gives a shortened code.

	--format=plain

Output format: plain, csv, json or xml. For json and xml output each line
is an element, there is no root node. The csv format starts with a header.

	--filter=

Only display blocks whose status is in the comma-separated list: ok,
corrected, uncorrectable or invalid.

	--loglevel=warn
	--logfile=

Log level, and an optional file receiving every log entry as json.

Every flag can also be set from the environment, CYCLIC_GENERATOR=10011
for example. Flags given on the command line take precedence.
*/
package main
