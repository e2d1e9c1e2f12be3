package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "deal [seed] - deal a fresh game; seed is base64 from a previous deal\n")
	io.WriteString(w, "load <file> - load a position from a YAML snapshot\n")
	io.WriteString(w, "save <file> - save the current position as a YAML snapshot\n")
	io.WriteString(w, "show (or s) - display the current position\n")
	io.WriteString(w, "moves - list the legal moves, numbered\n")
	io.WriteString(w, "play <n> - play move number n from the `moves` list\n")
	io.WriteString(w, "undo - take back the last played move\n")
	io.WriteString(w, "solve [-maxiterations n] [-weight w] - search for a winning line\n")
	io.WriteString(w, "    solve stop - cancel a running solve\n")
	io.WriteString(w, "    solve log - log search progress to "+SolveLog+"\n")
	io.WriteString(w, "autoplay [-deals n] [-threads n] [-log file] [-seedfile file] - solve a batch of random deals\n")
	io.WriteString(w, "    autoplay stop - cancel a running batch\n")
	io.WriteString(w, "analyze <file> - summarize a batch CSV log\n")
	io.WriteString(w, "set [option] [value] - show or change maxiterations, weight, recyclelimit, threads\n")
	io.WriteString(w, "exit - quit\n")
}
